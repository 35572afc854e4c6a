package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/diegoclair/monthly-report/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func newTestMailer(sender Sender) *Mailer {
	return New(sender, NewDefaultRenderer(), Config{
		AppURL:     "https://report.example.com",
		SenderName: "財務處",
	})
}

func TestMailer_SendBirthdayCard(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
		return email.To == "alice@example.com" &&
			email.ToName == "Alice" &&
			email.Subject == "🎉 生日快樂！Alice" &&
			strings.Contains(email.HTML, "生日快樂") &&
			strings.Contains(email.HTML, "#764ba2") &&
			strings.Contains(email.Text, "財務處全體同仁")
	})).Return(nil)

	err := newTestMailer(sender).SendBirthdayCard(context.Background(), &entity.Staff{
		Name:  "Alice",
		Email: "alice@example.com",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_SendHolidayCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		kind       entity.HolidayKind
		subject    string
		emoji      string
		background string
	}{
		{
			name:       "christmas",
			kind:       entity.HolidayChristmas,
			subject:    "🎊 聖誕節快樂！",
			emoji:      "🎄🎅⛄",
			background: "#165b33",
		},
		{
			name:       "new year",
			kind:       entity.HolidayNewYear,
			subject:    "🎊 新年快樂！",
			emoji:      "🎆🎊✨",
			background: "#1a1a2e",
		},
		{
			name:       "lunar new year",
			kind:       entity.HolidayLunarNewYear,
			subject:    "🎊 農曆新年快樂！",
			emoji:      "🧧🐉🏮",
			background: "#ffed4e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &MockSender{}
			sender.On("Send", mock.Anything, mock.Anything).Return(nil)

			err := newTestMailer(sender).SendHolidayCard(context.Background(), &entity.Staff{
				Name:  "Bob",
				Email: "bob@example.com",
			}, tt.kind)
			require.NoError(t, err)

			sender.AssertNumberOfCalls(t, "Send", 1)
			email := sender.Calls[0].Arguments.Get(1).(*Email)
			assert.Equal(t, tt.subject, email.Subject)
			assert.Contains(t, email.HTML, tt.emoji)
			assert.Contains(t, email.HTML, tt.background)
			assert.Contains(t, email.Text, "Bob")
		})
	}
}

func TestMailer_SendMonthlyReport(t *testing.T) {
	t.Parallel()

	report := &entity.MonthlyReport{
		Month: "2026-01",
		Completed: []entity.ReportItem{
			{Title: "年度決算", Content: "如期完成"},
		},
		Focus: []entity.ReportItem{
			{Title: "預算編列", Content: "啟動新年度作業"},
		},
	}

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	err := newTestMailer(sender).SendMonthlyReport(context.Background(), &entity.Staff{
		Name:  "Carol",
		Email: "carol@example.com",
	}, report)
	require.NoError(t, err)

	email := sender.Calls[0].Arguments.Get(1).(*Email)
	assert.Equal(t, "【財務處月報】2026 年 1 月份月報", email.Subject)
	assert.Contains(t, email.Text, defaultSummary)
	assert.Contains(t, email.Text, "年度決算")
	assert.Contains(t, email.Text, "預算編列")
	assert.Contains(t, email.HTML, "https://report.example.com")
}

func TestMailer_SendMonthlyReport_UsesQuoteAsSummary(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	err := newTestMailer(sender).SendMonthlyReport(context.Background(), &entity.Staff{
		Name:  "Carol",
		Email: "carol@example.com",
	}, &entity.MonthlyReport{Month: "2026-02", Quote: "穩健前行"})
	require.NoError(t, err)

	email := sender.Calls[0].Arguments.Get(1).(*Email)
	assert.Contains(t, email.Text, "穩健前行")
	assert.NotContains(t, email.Text, defaultSummary)
	assert.NotContains(t, email.Text, "上月達成")
}

func TestMailer_SendMonthlyReport_InvalidReport(t *testing.T) {
	t.Parallel()

	staff := &entity.Staff{Name: "Carol", Email: "carol@example.com"}

	tests := []struct {
		name   string
		report *entity.MonthlyReport
	}{
		{name: "nil report", report: nil},
		{name: "bad month", report: &entity.MonthlyReport{Month: "January"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &MockSender{}
			err := newTestMailer(sender).SendMonthlyReport(context.Background(), staff, tt.report)
			require.ErrorIs(t, err, ErrRenderFailed)
			sender.AssertNotCalled(t, "Send")
		})
	}
}

func TestMailer_NoRecipient(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := newTestMailer(sender)

	err := m.SendBirthdayCard(context.Background(), &entity.Staff{Name: "Dan"})
	require.ErrorIs(t, err, ErrNoRecipient)

	err = m.SendHolidayCard(context.Background(), nil, entity.HolidayChristmas)
	require.ErrorIs(t, err, ErrNoRecipient)

	require.NotPanics(t, func() {
		err = m.SendBirthdayCard(context.Background(), nil)
	})
	require.ErrorIs(t, err, ErrNoRecipient)

	require.NotPanics(t, func() {
		err = m.SendMonthlyReport(context.Background(), nil, &entity.MonthlyReport{Month: "2026-01"})
	})
	require.ErrorIs(t, err, ErrNoRecipient)

	sender.AssertNotCalled(t, "Send")
}

func TestMailer_SendFailure(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("connection refused")
	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(sendErr)

	err := newTestMailer(sender).SendBirthdayCard(context.Background(), &entity.Staff{
		Name:  "Eve",
		Email: "eve@example.com",
	})

	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, sendErr)
}

func TestMailer_MissingSubject(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`<html>{{.Content}}</html>`)},
		"birthday.md":       &fstest.MapFile{Data: []byte("Hello {{.Name}}")},
	}

	sender := &MockSender{}
	m := New(sender, NewRenderer(fs, "."), Config{})

	err := m.SendBirthdayCard(context.Background(), &entity.Staff{Name: "Eve", Email: "eve@example.com"})
	require.ErrorIs(t, err, ErrRenderFailed)
	sender.AssertNotCalled(t, "Send")
}

func TestDisabledSender(t *testing.T) {
	t.Parallel()

	err := DisabledSender{}.Send(context.Background(), &Email{})
	require.ErrorIs(t, err, ErrConfigMissing)

	err = DisabledSender{Reason: errors.New("GMAIL_APP_PASSWORD is empty")}.Send(context.Background(), &Email{})
	require.ErrorIs(t, err, ErrConfigMissing)
	assert.Contains(t, err.Error(), "GMAIL_APP_PASSWORD")
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bob@example.com", Recipient("", "bob@example.com"))
	assert.Equal(t, "Bob <bob@example.com>", Recipient("Bob", "bob@example.com"))
}
