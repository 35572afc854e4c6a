package handlers

import (
	"github.com/diegoclair/monthly-report/internal/domain/entity"
	"github.com/diegoclair/monthly-report/pkg/models"
)

func toStaffList(staff []*entity.Staff) models.StaffListResponse {
	data := make([]models.Staff, 0, len(staff))
	for _, s := range staff {
		data = append(data, models.Staff{
			ID:       s.ID,
			Name:     s.Name,
			Email:    s.Email,
			Birthday: s.Birthday,
		})
	}
	return models.StaffListResponse{Total: len(data), Data: data}
}

func toReportItems(items []entity.ReportItem) []models.ReportItem {
	out := make([]models.ReportItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.ReportItem{Title: item.Title, Content: item.Content})
	}
	return out
}

func toReport(report *entity.MonthlyReport) models.Report {
	calendar := make([]models.CalendarEvent, 0, len(report.Calendar))
	for _, ev := range report.Calendar {
		calendar = append(calendar, models.CalendarEvent{Date: ev.Date, Event: ev.Event, Detail: ev.Detail})
	}

	return models.Report{
		Month:     report.Month,
		Completed: toReportItems(report.Completed),
		Focus:     toReportItems(report.Focus),
		TaxNews:   toReportItems(report.TaxNews),
		Calendar:  calendar,
		Quote:     report.Quote,
	}
}

func toJobList(jobs []entity.JobInfo) models.JobListResponse {
	data := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		data = append(data, models.Job{
			ID:      j.ID,
			Name:    j.Name,
			Spec:    j.Spec,
			NextRun: j.NextRun,
		})
	}
	return models.JobListResponse{Total: len(data), Data: data}
}

func toRunReport(report *entity.RunReport) models.RunReport {
	failed := report.Failed()

	resp := models.RunReport{
		RunID:      report.RunID,
		JobID:      report.JobID,
		Instant:    report.Instant,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Attempted:  report.Attempted(),
		Sent:       report.Succeeded(),
		Failed:     len(failed),
		Skipped:    report.Skipped,
	}
	for _, d := range failed {
		resp.Failures = append(resp.Failures, models.FailedDelivery{
			Name:  d.Name,
			Email: d.Email,
			Error: d.Err.Error(),
		})
	}
	if report.Err != nil {
		resp.Error = report.Err.Error()
	}
	return resp
}
