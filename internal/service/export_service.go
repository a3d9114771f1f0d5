package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftcare/internal/model"
	"shiftcare/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("所选区间内无可导出数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 工时表导出为 Excel (.xlsx)，按员工 + 日期排序，附合计行
//   - 员工可用性以 iCalendar (RFC 5545) 订阅源输出，供外部日历工具订阅
//   - 导出以 bytes.Buffer / 字符串返回，由 Handler 层设置 HTTP 响应头后写入
type ExportService interface {
	// ExportTimesheets 导出机构工时表为 Excel
	ExportTimesheets(ctx context.Context, organizationID string, start, end time.Time) (*bytes.Buffer, string, error)
	// AvailabilityFeed 生成单个员工的可用性 ICS 订阅源
	AvailabilityFeed(ctx context.Context, organizationID, userID string, start, end time.Time) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportTimesheets ──────────────────────
//
// 输出格式：
//   - 单 Sheet "工时表"
//   - 列：员工 | 日期 | 班次类型 | 开始 | 结束 | 工时 | 状态
//   - 末行合计总工时

func (s *exportService) ExportTimesheets(ctx context.Context, organizationID string, start, end time.Time) (*bytes.Buffer, string, error) {
	sheets, err := s.repo.Timesheet.ListByOrganizationRange(ctx, organizationID, start, end)
	if err != nil {
		s.logger.Error("查询工时记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(sheets) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "工时表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 16)
	f.SetColWidth(sheetName, "D", "E", 8)
	f.SetColWidth(sheetName, "F", "G", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("工时表 %s ~ %s",
		start.Format("2006-01-02"), end.Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"员工", "日期", "班次类型", "开始", "结束", "工时", "状态"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "G2", headerStyle)

	statusNames := map[string]string{
		model.TimesheetStatusPending:  "待审批",
		model.TimesheetStatusApproved: "已批准",
		model.TimesheetStatusRejected: "已驳回",
	}

	row := 3
	var totalHours float64
	for i := range sheets {
		ts := &sheets[i]

		name := ts.UserID
		if ts.User != nil {
			name = ts.User.Name
		}
		shiftName := ts.ShiftTypeID
		if ts.ShiftType != nil {
			shiftName = ts.ShiftType.Name
		}

		f.SetCellValue(sheetName, cell("A", row), name)
		f.SetCellValue(sheetName, cell("B", row), ts.WorkDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("C", row), shiftName)
		f.SetCellValue(sheetName, cell("D", row), ts.StartTime)
		f.SetCellValue(sheetName, cell("E", row), ts.EndTime)
		f.SetCellValue(sheetName, cell("F", row), ts.Hours)
		f.SetCellValue(sheetName, cell("G", row), statusNames[ts.Status])

		totalHours += ts.Hours
		row++
	}

	// 合计行
	f.SetCellValue(sheetName, cell("A", row), "合计")
	f.SetCellValue(sheetName, cell("F", row), totalHours)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("工时表_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── AvailabilityFeed ──────────────────────
//
// 每个可用性条目输出一个 VEVENT：
//   - day   → 08:00–20:00
//   - night → 20:00–次日 08:00
//   - both  → 全天 00:00–24:00
// 周期性记录不在此展开（条目是星期模板），订阅源只含具体日期条目。

var feedPeriodWindows = map[string][2]int{
	model.PeriodDay:   {8, 20},
	model.PeriodNight: {20, 32}, // 跨夜到次日 08:00
	model.PeriodBoth:  {0, 24},
}

var feedPeriodNames = map[string]string{
	model.PeriodDay:   "日班可用",
	model.PeriodNight: "夜班可用",
	model.PeriodBoth:  "全天可用",
}

func (s *exportService) AvailabilityFeed(ctx context.Context, organizationID, userID string, start, end time.Time) (string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	avs, err := s.repo.Availability.ListForWindow(ctx, organizationID, userID, start, end)
	if err != nil {
		s.logger.Error("查询可用性失败", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//shiftcare//availability//ZH")
	cal.SetName(fmt.Sprintf("%s 可用时间", user.Name))

	now := time.Now()
	for i := range avs {
		av := &avs[i]
		if av.IsRecurring {
			continue
		}
		for _, entry := range av.Entries {
			d := entry.Date.UTC()
			if d.Before(start) || d.After(end) {
				continue
			}
			window, ok := feedPeriodWindows[entry.Period]
			if !ok {
				continue
			}
			base := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

			uid := fmt.Sprintf("%s-%s-%s@shiftcare", av.AvailabilityID, d.Format("20060102"), entry.Period)
			evt := cal.AddEvent(uid)
			evt.SetCreatedTime(now)
			evt.SetDtStampTime(now)
			evt.SetStartAt(base.Add(time.Duration(window[0]) * time.Hour))
			evt.SetEndAt(base.Add(time.Duration(window[1]) * time.Hour))
			evt.SetSummary(fmt.Sprintf("%s — %s", user.Name, feedPeriodNames[entry.Period]))
		}
	}

	return cal.Serialize(), nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
