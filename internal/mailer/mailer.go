// Package mailer renders the birthday, holiday and monthly report mails and
// hands them to a transport. Transports live in the smtp, gmail and resend
// subpackages.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	texttemplate "text/template"
	"time"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

const defaultSummary = "本月財務工作已順利完成"

type Config struct {
	AppURL     string
	SenderName string
	Layout     string
}

type holidayStyle struct {
	emoji      string
	accent     string
	background string
}

var holidayStyles = map[entity.HolidayKind]holidayStyle{
	entity.HolidayChristmas:    {emoji: "🎄🎅⛄", accent: "#c41e3a", background: "#165b33"},
	entity.HolidayNewYear:      {emoji: "🎆🎊✨", accent: "#ffd700", background: "#1a1a2e"},
	entity.HolidayLunarNewYear: {emoji: "🧧🐉🏮", accent: "#ff0000", background: "#ffed4e"},
}

var defaultHolidayStyle = holidayStyle{emoji: "🎉🎊", accent: "#272343", background: "#667eea"}

// Mailer implements contract.MailSender on top of a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

var _ contract.MailSender = (*Mailer)(nil)

func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

func (m *Mailer) SendBirthdayCard(ctx context.Context, staff *entity.Staff) error {
	return m.send(ctx, staff, TemplateBirthday, map[string]any{})
}

func (m *Mailer) SendHolidayCard(ctx context.Context, staff *entity.Staff, kind entity.HolidayKind) error {
	style, ok := holidayStyles[kind]
	if !ok {
		style = defaultHolidayStyle
	}

	return m.send(ctx, staff, TemplateHoliday, map[string]any{
		"Holiday":    kind.DisplayName(),
		"Emoji":      style.emoji,
		"accent":     style.accent,
		"background": style.background,
	})
}

func (m *Mailer) SendMonthlyReport(ctx context.Context, staff *entity.Staff, report *entity.MonthlyReport) error {
	if report == nil {
		return fmt.Errorf("%w: no report content", ErrRenderFailed)
	}

	month, err := time.Parse(entity.MonthLayout, report.Month)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	summary := report.Quote
	if summary == "" {
		summary = defaultSummary
	}

	return m.send(ctx, staff, TemplateMonthlyReport, map[string]any{
		"Year":      month.Year(),
		"Month":     int(month.Month()),
		"Summary":   summary,
		"Completed": report.Completed,
		"Focus":     report.Focus,
		"ReportURL": m.config.AppURL,
	})
}

func (m *Mailer) send(ctx context.Context, staff *entity.Staff, templateName string, data map[string]any) error {
	if staff == nil || !staff.HasEmail() {
		return ErrNoRecipient
	}

	data["Name"] = staff.Name
	data["SenderName"] = m.config.SenderName

	result, err := m.renderer.Render(m.config.Layout, templateName, data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject, err := renderSubject(result.Metadata, data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	email := &Email{
		To:      staff.Email,
		ToName:  staff.Name,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}

func renderSubject(metadata map[string]any, data map[string]any) (string, error) {
	subject, _ := metadata["subject"].(string)
	if subject == "" {
		return "", errors.New("template has no subject")
	}

	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
