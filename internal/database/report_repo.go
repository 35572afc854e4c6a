package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

type reportRepo struct {
	db dbConn
}

func newReportRepo(db dbConn) contract.ReportRepo {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(report *entity.MonthlyReport) error {
	if _, err := entity.ParseMonth(report.Month); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	query := `
		INSERT INTO monthly_reports (month, completed, focus, tax_news, calendar, quote)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	// List sections are stored as JSON
	columns := make([]string, 0, 4)
	for _, v := range []interface{}{report.Completed, report.Focus, report.TaxNews, report.Calendar} {
		data, err := marshalList(v)
		if err != nil {
			return fmt.Errorf("failed to marshal report section: %w", err)
		}
		columns = append(columns, data)
	}

	result, err := r.db.Exec(query,
		report.Month,
		columns[0],
		columns[1],
		columns[2],
		columns[3],
		report.Quote,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	report.ID = id
	return nil
}

func (r *reportRepo) GetByMonth(month string) (*entity.MonthlyReport, error) {
	report := &entity.MonthlyReport{}
	query := `
		SELECT id, month, completed, focus, tax_news, calendar, quote
		FROM monthly_reports
		WHERE month = ?
	`

	var completed, focus, taxNews, calendar string
	err := r.db.QueryRow(query, month).Scan(
		&report.ID,
		&report.Month,
		&completed,
		&focus,
		&taxNews,
		&calendar,
		&report.Quote,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	sections := []struct {
		raw  string
		dest interface{}
	}{
		{completed, &report.Completed},
		{focus, &report.Focus},
		{taxNews, &report.TaxNews},
		{calendar, &report.Calendar},
	}
	for _, s := range sections {
		if s.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(s.raw), s.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report section: %w", err)
		}
	}

	return report, nil
}

func (r *reportRepo) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM monthly_reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

func marshalList(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
