package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

// BuiltinReport is the first report shipped with the application.
func BuiltinReport() *entity.MonthlyReport {
	return &entity.MonthlyReport{
		Month: "2026-01",
		Completed: []entity.ReportItem{
			{Title: "年度預算審核", Content: "完成 2026 年度預算審核，並提交董事會核准"},
			{Title: "Q4 報稅", Content: "完成第四季度營業稅及所得稅申報作業"},
			{Title: "會計師查帳", Content: "配合外部會計師完成年度財務報表查核"},
		},
		Focus: []entity.ReportItem{
			{Title: "年終獎金試算", Content: "完成全體員工年終獎金試算與核對"},
			{Title: "新會計系統測試", Content: "進行新一代 ERP 會計模組上線前測試"},
		},
		TaxNews: []entity.ReportItem{
			{Title: "CFC 新制上路", Content: "受控外國企業（CFC）制度已正式實施，跨國企業需留意申報義務"},
			{Title: "IFRS 17 保險合約", Content: "IFRS 17 保險合約新準則已生效，金融業需注意會計處理變更"},
			{Title: "營業稅電子發票", Content: "財政部推動 100% 電子發票，請確認公司發票系統符合規範"},
			{Title: "最低稅負制調整", Content: "2026 年最低稅負制門檻調整，請重新評估稅務規劃"},
			{Title: "碳費開徵預告", Content: "環境部預計 2026 年下半年開徵碳費，建議提前盤查碳排數據"},
		},
		Calendar: []entity.CalendarEvent{
			{Date: "1/10", Event: "營業稅申報", Detail: "1 月 10 日前完成 12 月份營業稅申報"},
			{Date: "1/25", Event: "員工薪資發放", Detail: "1 月 25 日發放 1 月份薪資"},
			{Date: "1/31", Event: "月底結帳", Detail: "1 月 31 日完成月度財務結帳作業"},
		},
		Quote: "細緻的數字背後，是財務人對公司價值的守護。",
	}
}

// Seed fills an empty database with the built-in report and the roster in a
// single transaction. It reports whether anything was written.
func Seed(ctx context.Context, dm contract.DataManager, source contract.RosterSource, logger *slog.Logger) (bool, error) {
	count, err := dm.Report().Count()
	if err != nil {
		return false, fmt.Errorf("failed to count reports: %w", err)
	}
	if count > 0 {
		logger.Info("database already seeded, skipping")
		return false, nil
	}

	staff, origin, err := source.LoadStaff()
	if err != nil {
		logger.Error("failed to load staff roster, using built-in example", slog.String("error", err.Error()))
		staff, origin = BuiltinStaff(), SourceBuiltin
	}

	report := BuiltinReport()
	err = dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		if err := tx.Report().Create(report); err != nil {
			return fmt.Errorf("failed to create report %s: %w", report.Month, err)
		}
		for _, member := range staff {
			if err := tx.Staff().Create(member); err != nil {
				return fmt.Errorf("failed to create staff %q: %w", member.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Info("database seeded",
		slog.String("report", report.Month),
		slog.Int("staff", len(staff)),
		slog.String("source", origin),
	)
	return true, nil
}
