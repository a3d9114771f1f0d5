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

func setupTestAvailabilityService() (AvailabilityService, *mockRepoSet) {
	set := newMockRepoSet()
	set.orgs.orgs["org-001"] = &model.Organization{
		OrganizationID: "org-001",
		Name:           "夕阳红养老院",
		Category:       model.OrgCategoryCareHome,
	}
	set.users.users["user-001"] = &model.User{
		UserID:         "user-001",
		OrganizationID: "org-001",
		Name:           "张护工",
		Role:           model.RoleCarer,
	}
	svc := NewAvailabilityService(set.repository(), zap.NewNop())
	return svc, set
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ── periodCovers 测试 ──

func TestPeriodCovers(t *testing.T) {
	cases := []struct {
		entry     string
		requested string
		want      bool
	}{
		{model.PeriodDay, model.PeriodDay, true},
		{model.PeriodDay, model.PeriodNight, false},
		{model.PeriodBoth, model.PeriodDay, true},
		{model.PeriodBoth, model.PeriodNight, true},
		{model.PeriodBoth, model.PeriodBoth, true},
		// 请求 both 需要全天可用，半天条目不满足
		{model.PeriodDay, model.PeriodBoth, false},
		{model.PeriodNight, model.PeriodBoth, false},
	}
	for _, c := range cases {
		if got := periodCovers(c.entry, c.requested); got != c.want {
			t.Errorf("periodCovers(%s, %s) 期望%v，实际=%v", c.entry, c.requested, c.want, got)
		}
	}
}

// ── CreateOrUpdate 测试 ──

func TestAvailabilityService_CreateOrUpdate_CreatesNew(t *testing.T) {
	svc, set := setupTestAvailabilityService()

	req := &dto.UpsertAvailabilityRequest{
		UserID: "user-001",
		Entries: []dto.AvailabilityEntryInput{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
			{Date: day(2026, 3, 3), Period: model.PeriodNight},
		},
		EffectiveFrom: day(2026, 3, 1),
	}

	result, err := svc.CreateOrUpdate(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("CreateOrUpdate 应成功: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Errorf("期望2条条目，实际=%d", len(result.Entries))
	}
	if !result.IsActive {
		t.Error("新建记录应为活跃状态")
	}
	if len(set.availabilities.records) != 1 {
		t.Errorf("期望落库1条记录，实际=%d", len(set.availabilities.records))
	}
}

func TestAvailabilityService_CreateOrUpdate_ReplacesNotMerges(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
			{Date: day(2026, 3, 3), Period: model.PeriodDay},
			{Date: day(2026, 3, 4), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 3, 1),
		IsActive:      true,
	}

	req := &dto.UpsertAvailabilityRequest{
		UserID: "user-001",
		Entries: []dto.AvailabilityEntryInput{
			{Date: day(2026, 3, 5), Period: model.PeriodNight},
		},
		EffectiveFrom: day(2026, 3, 1),
	}

	result, err := svc.CreateOrUpdate(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("CreateOrUpdate 应成功: %v", err)
	}
	if result.AvailabilityID != "av-001" {
		t.Errorf("应命中并更新既有记录，实际=%s", result.AvailabilityID)
	}
	// 整体替换：旧条目全部丢弃，绝不合并
	if len(result.Entries) != 1 {
		t.Fatalf("期望条目被整体替换为1条，实际=%d", len(result.Entries))
	}
	if result.Entries[0].Period != model.PeriodNight {
		t.Errorf("期望替换后的条目时段=night，实际=%s", result.Entries[0].Period)
	}
	if len(set.availabilities.records) != 1 {
		t.Errorf("替换不应产生新记录，实际=%d条", len(set.availabilities.records))
	}
}

func TestAvailabilityService_CreateOrUpdate_RecurringMatchedByUser(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 1, 1),
		IsRecurring:   true,
		IsActive:      true,
	}

	// 周期性记录按用户唯一匹配，与生效窗口无关
	req := &dto.UpsertAvailabilityRequest{
		UserID: "user-001",
		Entries: []dto.AvailabilityEntryInput{
			{Date: day(2026, 6, 1), Period: model.PeriodBoth},
		},
		EffectiveFrom: day(2026, 6, 1),
		IsRecurring:   true,
	}

	result, err := svc.CreateOrUpdate(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("CreateOrUpdate 应成功: %v", err)
	}
	if result.AvailabilityID != "av-001" {
		t.Error("周期性请求应命中既有周期性记录")
	}
	if len(result.Entries) != 1 || result.Entries[0].Period != model.PeriodBoth {
		t.Error("周期性记录条目同样整体替换")
	}
}

func TestAvailabilityService_CreateOrUpdate_UserNotFound(t *testing.T) {
	svc, set := setupTestAvailabilityService()

	req := &dto.UpsertAvailabilityRequest{
		UserID:        "ghost",
		Entries:       []dto.AvailabilityEntryInput{{Date: day(2026, 3, 2), Period: model.PeriodDay}},
		EffectiveFrom: day(2026, 3, 1),
	}

	if _, err := svc.CreateOrUpdate(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望ErrUserNotFound，实际=%v", err)
	}
	if len(set.availabilities.records) != 0 {
		t.Errorf("用户不存在不应落库，实际=%d条", len(set.availabilities.records))
	}
}

func TestAvailabilityService_CreateOrUpdate_OrganizationNotFound(t *testing.T) {
	svc, set := setupTestAvailabilityService()

	req := &dto.UpsertAvailabilityRequest{
		UserID:        "user-001",
		Entries:       []dto.AvailabilityEntryInput{{Date: day(2026, 3, 2), Period: model.PeriodDay}},
		EffectiveFrom: day(2026, 3, 1),
	}

	if _, err := svc.CreateOrUpdate(context.Background(), "ghost-org", "admin-001", req); !errors.Is(err, ErrOrganizationNotFound) {
		t.Errorf("期望ErrOrganizationNotFound，实际=%v", err)
	}
	if len(set.availabilities.records) != 0 {
		t.Errorf("机构不存在不应落库，实际=%d条", len(set.availabilities.records))
	}
}

func TestAvailabilityService_CreateOrUpdate_InvalidPeriod(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	req := &dto.UpsertAvailabilityRequest{
		UserID: "user-001",
		Entries: []dto.AvailabilityEntryInput{
			{Date: day(2026, 3, 2), Period: "afternoon"},
		},
		EffectiveFrom: day(2026, 3, 1),
	}

	if _, err := svc.CreateOrUpdate(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("期望ErrInvalidPeriod，实际=%v", err)
	}
}

func TestAvailabilityService_CreateOrUpdate_InvalidRange(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	to := day(2026, 2, 1)
	req := &dto.UpsertAvailabilityRequest{
		UserID:        "user-001",
		Entries:       []dto.AvailabilityEntryInput{{Date: day(2026, 3, 2), Period: model.PeriodDay}},
		EffectiveFrom: day(2026, 3, 1),
		EffectiveTo:   &to,
	}

	if _, err := svc.CreateOrUpdate(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望ErrInvalidDateRange，实际=%v", err)
	}
}

// ── GetAvailability 测试 ──

func TestAvailabilityService_GetAvailability_WindowClipsEntries(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 1), Period: model.PeriodDay},
			{Date: day(2026, 3, 10), Period: model.PeriodDay},
			{Date: day(2026, 3, 20), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 3, 1),
		IsActive:      true,
	}

	result, err := svc.GetAvailability(context.Background(), "org-001", "user-001",
		day(2026, 3, 5), day(2026, 3, 15))
	if err != nil {
		t.Fatalf("GetAvailability 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望1条记录，实际=%d", len(result))
	}
	// 非周期记录只返回窗口内条目
	if len(result[0].Entries) != 1 {
		t.Fatalf("期望窗口裁剪后剩1条条目，实际=%d", len(result[0].Entries))
	}
	if !result[0].Entries[0].SameDate(day(2026, 3, 10)) {
		t.Error("应保留2026-03-10的条目")
	}
}

func TestAvailabilityService_GetAvailability_WindowBoundsDateOnly(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			// 条目带有时刻，窗口边界按日历日比较时应同样命中
			{Date: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC), Period: model.PeriodDay},
			{Date: time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), Period: model.PeriodNight},
		},
		EffectiveFrom: day(2026, 3, 1),
		IsActive:      true,
	}

	result, err := svc.GetAvailability(context.Background(), "org-001", "user-001",
		time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), day(2026, 3, 15))
	if err != nil {
		t.Fatalf("GetAvailability 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望1条记录，实际=%d", len(result))
	}
	if len(result[0].Entries) != 2 {
		t.Errorf("窗口首尾两日带时刻的条目都应保留，期望2条，实际=%d", len(result[0].Entries))
	}
}

func TestAvailabilityService_GetAvailability_RecurringEntriesUntouched(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 1, 5), Period: model.PeriodDay},
			{Date: day(2026, 1, 6), Period: model.PeriodNight},
		},
		EffectiveFrom: day(2026, 1, 1),
		IsRecurring:   true,
		IsActive:      true,
	}

	// 周期性记录是星期模板，条目不做窗口裁剪
	result, err := svc.GetAvailability(context.Background(), "org-001", "user-001",
		day(2026, 6, 1), day(2026, 6, 30))
	if err != nil {
		t.Fatalf("GetAvailability 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望1条记录，实际=%d", len(result))
	}
	if len(result[0].Entries) != 2 {
		t.Errorf("周期性条目应原样返回，期望2条，实际=%d", len(result[0].Entries))
	}
	if !result[0].IsRecurring {
		t.Error("应保留周期性标记")
	}
}

func TestAvailabilityService_GetAvailability_InvalidRange(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	if _, err := svc.GetAvailability(context.Background(), "org-001", "user-001",
		day(2026, 3, 15), day(2026, 3, 5)); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望ErrInvalidDateRange，实际=%v", err)
	}
}

// ── UpdateSingleDate 测试 ──

func TestAvailabilityService_UpdateSingleDate_NoRecordNilPeriod(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	req := &dto.UpdateSingleDateRequest{UserID: "user-001", Date: day(2026, 3, 2)}
	if _, err := svc.UpdateSingleDate(context.Background(), "org-001", "admin-001", req); !errors.Is(err, ErrAvailabilityNotFound) {
		t.Errorf("无记录时删除单日期望ErrAvailabilityNotFound，实际=%v", err)
	}
}

func TestAvailabilityService_UpdateSingleDate_NoRecordCreatesSingleDay(t *testing.T) {
	svc, set := setupTestAvailabilityService()

	period := model.PeriodDay
	req := &dto.UpdateSingleDateRequest{UserID: "user-001", Date: day(2026, 3, 2), Period: &period}
	result, err := svc.UpdateSingleDate(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("UpdateSingleDate 应成功: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Period != model.PeriodDay {
		t.Error("应创建含单日条目的新记录")
	}
	if result.IsRecurring {
		t.Error("单日新记录应为非周期性")
	}
	if result.EffectiveTo == nil || !result.EffectiveTo.Equal(day(2026, 3, 2)) {
		t.Error("单日记录的生效窗口应收敛到该日")
	}
	if len(set.availabilities.records) != 1 {
		t.Errorf("期望落库1条记录，实际=%d", len(set.availabilities.records))
	}
}

func TestAvailabilityService_UpdateSingleDate_UpsertsExistingDate(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	to := day(2026, 3, 31)
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
			{Date: day(2026, 3, 3), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 3, 1),
		EffectiveTo:   &to,
		IsActive:      true,
	}

	period := model.PeriodNight
	req := &dto.UpdateSingleDateRequest{UserID: "user-001", Date: day(2026, 3, 2), Period: &period}
	result, err := svc.UpdateSingleDate(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("UpdateSingleDate 应成功: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("改写既有日期不应增减条目，期望2条，实际=%d", len(result.Entries))
	}
	for _, e := range result.Entries {
		if e.SameDate(day(2026, 3, 2)) && e.Period != model.PeriodNight {
			t.Errorf("2026-03-02的时段应改为night，实际=%s", e.Period)
		}
	}
}

func TestAvailabilityService_UpdateSingleDate_NilPeriodDeletesEntry(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	to := day(2026, 3, 31)
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
			{Date: day(2026, 3, 3), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 3, 1),
		EffectiveTo:   &to,
		IsActive:      true,
	}

	req := &dto.UpdateSingleDateRequest{UserID: "user-001", Date: day(2026, 3, 2)}
	result, err := svc.UpdateSingleDate(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("UpdateSingleDate 应成功: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("删除单日后期望剩1条条目，实际=%d", len(result.Entries))
	}
	if result.Entries[0].SameDate(day(2026, 3, 2)) {
		t.Error("2026-03-02的条目应被删除")
	}
}

func TestAvailabilityService_UpdateSingleDate_AppendsNewDate(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	to := day(2026, 3, 31)
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 3, 1),
		EffectiveTo:   &to,
		IsActive:      true,
	}

	period := model.PeriodBoth
	req := &dto.UpdateSingleDateRequest{UserID: "user-001", Date: day(2026, 3, 10), Period: &period}
	result, err := svc.UpdateSingleDate(context.Background(), "org-001", "admin-001", req)
	if err != nil {
		t.Fatalf("UpdateSingleDate 应成功: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("新增日期后期望2条条目，实际=%d", len(result.Entries))
	}
}

// ── GetAvailableEmployees 测试 ──

func TestAvailabilityService_GetAvailableEmployees_MatchesDateAndPeriod(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 3, 1),
		IsActive:      true,
	}
	set.availabilities.records["av-002"] = &model.EmployeeAvailability{
		AvailabilityID: "av-002",
		UserID:         "user-002",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodNight},
		},
		EffectiveFrom: day(2026, 3, 1),
		IsActive:      true,
	}

	result, err := svc.GetAvailableEmployees(context.Background(), "org-001", day(2026, 3, 2), model.PeriodDay)
	if err != nil {
		t.Fatalf("GetAvailableEmployees 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望仅日班员工命中，实际=%d人", len(result))
	}
	if result[0].UserID != "user-001" {
		t.Errorf("期望命中user-001，实际=%s", result[0].UserID)
	}
}

func TestAvailabilityService_GetAvailableEmployees_BothEntryCoversAnyRequest(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodBoth},
		},
		EffectiveFrom: day(2026, 3, 1),
		IsActive:      true,
	}

	// 条目为 both 满足 night 请求
	result, err := svc.GetAvailableEmployees(context.Background(), "org-001", day(2026, 3, 2), model.PeriodNight)
	if err != nil {
		t.Fatalf("GetAvailableEmployees 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("both 条目应满足 night 请求，实际=%d人", len(result))
	}
}

func TestAvailabilityService_GetAvailableEmployees_HalfDayEntryFailsBothRequest(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries: model.AvailabilityEntryList{
			{Date: day(2026, 3, 2), Period: model.PeriodDay},
		},
		EffectiveFrom: day(2026, 3, 1),
		IsActive:      true,
	}

	// 请求 both 需要全天可用，仅登记日班的员工不命中
	result, err := svc.GetAvailableEmployees(context.Background(), "org-001", day(2026, 3, 2), model.PeriodBoth)
	if err != nil {
		t.Fatalf("GetAvailableEmployees 应成功: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("day 条目不应满足 both 请求，实际=%d人", len(result))
	}
}

func TestAvailabilityService_GetAvailableEmployees_RecurringAlwaysMatches(t *testing.T) {
	svc, set := setupTestAvailabilityService()
	set.availabilities.records["av-001"] = &model.EmployeeAvailability{
		AvailabilityID: "av-001",
		UserID:         "user-001",
		OrganizationID: "org-001",
		Entries:        model.AvailabilityEntryList{},
		EffectiveFrom:  day(2026, 1, 1),
		IsRecurring:    true,
		IsActive:       true,
	}

	result, err := svc.GetAvailableEmployees(context.Background(), "org-001", day(2026, 7, 1), model.PeriodNight)
	if err != nil {
		t.Fatalf("GetAvailableEmployees 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("周期性记录应直接命中，实际=%d人", len(result))
	}
	if result[0].Period != model.PeriodBoth {
		t.Errorf("周期性命中的时段应标记为both，实际=%s", result[0].Period)
	}
	if !result[0].IsRecurring {
		t.Error("应标记周期性来源")
	}
}

func TestAvailabilityService_GetAvailableEmployees_InvalidPeriod(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	if _, err := svc.GetAvailableEmployees(context.Background(), "org-001", day(2026, 3, 2), "afternoon"); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("期望ErrInvalidPeriod，实际=%v", err)
	}
}

// ── Delete 测试 ──

func TestAvailabilityService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	if err := svc.Delete(context.Background(), "ghost", "admin-001"); !errors.Is(err, ErrAvailabilityNotFound) {
		t.Errorf("期望ErrAvailabilityNotFound，实际=%v", err)
	}
}
