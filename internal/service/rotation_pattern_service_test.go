package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"shiftcare/internal/dto"
	"shiftcare/internal/model"
)

// ── 测试辅助 ──

func setupTestRotationPatternService() (RotationPatternService, *mockRepoSet) {
	set := newMockRepoSet()
	set.shiftTypes.types["st-day"] = &model.ShiftType{
		ShiftTypeID: "st-day", OrganizationID: "org-001", Name: "早班", IsActive: true,
	}
	set.shiftTypes.types["st-night"] = &model.ShiftType{
		ShiftTypeID: "st-night", OrganizationID: "org-001", Name: "夜班", IsActive: true,
	}
	svc := NewRotationPatternService(set.repository(), zap.NewNop())
	return svc, set
}

func intPtr(i int) *int { return &i }

func rotationRequest() *dto.CreateRotationPatternRequest {
	return &dto.CreateRotationPatternRequest{
		Name: "四班两休",
		Sequence: model.RotationSequence{
			{ShiftTypeID: "st-day", ConsecutiveDays: 2},
			{ShiftTypeID: "st-night", ConsecutiveDays: 2},
		},
		BreakDays:          2,
		RepeatIndefinitely: true,
		EffectiveFrom:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ── Create 测试 ──

func TestRotationPatternService_Create_Success(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	result, err := svc.Create(context.Background(), "org-001", "admin-001", rotationRequest())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "四班两休" {
		t.Errorf("期望Name=四班两休，实际=%s", result.Name)
	}
	if !result.IsActive {
		t.Error("新建轮班模式应为活跃状态")
	}
}

func TestRotationPatternService_Create_CycleLengthAutoComputed(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	// 未声明周期时取序列天数+休息天数
	result, err := svc.Create(context.Background(), "org-001", "admin-001", rotationRequest())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.CycleLengthDays != 6 {
		t.Errorf("期望自动计算周期=6天，实际=%d", result.CycleLengthDays)
	}
}

func TestRotationPatternService_Create_DeclaredCycleMismatchOnlyWarns(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	// 声明值与计算值不一致只告警不拒绝，保留声明值
	req := rotationRequest()
	req.CycleLengthDays = 10
	result, err := svc.Create(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("周期不一致应只告警不拒绝: %v", err)
	}
	if result.CycleLengthDays != 10 {
		t.Errorf("应保留声明的周期10天，实际=%d", result.CycleLengthDays)
	}
}

func TestRotationPatternService_Create_EmptySequence(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	req := rotationRequest()
	req.Sequence = model.RotationSequence{}
	if _, err := svc.Create(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrRotationSequenceEmpty) {
		t.Errorf("期望ErrRotationSequenceEmpty，实际=%v", err)
	}
}

func TestRotationPatternService_Create_InvalidStep(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	req := rotationRequest()
	req.Sequence = model.RotationSequence{
		{ShiftTypeID: "st-day", ConsecutiveDays: 0},
	}
	if _, err := svc.Create(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrRotationStepInvalid) {
		t.Errorf("期望ErrRotationStepInvalid，实际=%v", err)
	}
}

func TestRotationPatternService_Create_UnknownShiftType(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	req := rotationRequest()
	req.Sequence = model.RotationSequence{
		{ShiftTypeID: "ghost", ConsecutiveDays: 2},
	}
	if _, err := svc.Create(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrShiftTypeNotFound) {
		t.Errorf("期望ErrShiftTypeNotFound，实际=%v", err)
	}
}

func TestRotationPatternService_Create_MaxRepetitionsRequired(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	req := rotationRequest()
	req.RepeatIndefinitely = false
	if _, err := svc.Create(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrMaxRepetitionsRequired) {
		t.Errorf("期望ErrMaxRepetitionsRequired，实际=%v", err)
	}

	req.MaxRepetitions = intPtr(4)
	result, err := svc.Create(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("指定最大重复次数后应成功: %v", err)
	}
	if result.MaxRepetitions == nil || *result.MaxRepetitions != 4 {
		t.Error("期望MaxRepetitions=4")
	}
}

// ── Update 测试 ──

func TestRotationPatternService_Update_FiniteRepeatNeedsMax(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	created, err := svc.Create(context.Background(), "org-001", "admin-001", rotationRequest())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	req := &dto.UpdateRotationPatternRequest{RepeatIndefinitely: boolPtr(false)}
	if _, err := svc.Update(context.Background(), created.PatternID, "admin-001", req); !errors.Is(err, ErrMaxRepetitionsRequired) {
		t.Errorf("期望ErrMaxRepetitionsRequired，实际=%v", err)
	}

	req.MaxRepetitions = intPtr(3)
	if _, err := svc.Update(context.Background(), created.PatternID, "admin-001", req); err != nil {
		t.Fatalf("补齐最大重复次数后应成功: %v", err)
	}
}

func TestRotationPatternService_Update_SequenceRevalidated(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	created, err := svc.Create(context.Background(), "org-001", "admin-001", rotationRequest())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	req := &dto.UpdateRotationPatternRequest{
		Sequence: model.RotationSequence{{ShiftTypeID: "ghost", ConsecutiveDays: 1}},
	}
	if _, err := svc.Update(context.Background(), created.PatternID, "admin-001", req); !errors.Is(err, ErrShiftTypeNotFound) {
		t.Errorf("期望ErrShiftTypeNotFound，实际=%v", err)
	}
}

func TestRotationPatternService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestRotationPatternService()

	if err := svc.Delete(context.Background(), "ghost", "admin-001"); !errors.Is(err, ErrRotationPatternNotFound) {
		t.Errorf("期望ErrRotationPatternNotFound，实际=%v", err)
	}
}
