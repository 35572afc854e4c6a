package resend

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoclair/monthly-report/internal/mailer"
)

type fakeEmails struct {
	err  error
	reqs []*resend.SendEmailRequest
}

func (f *fakeEmails) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.reqs = append(f.reqs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "missing api key", cfg: Config{SenderEmail: "finance@example.com"}, wantErr: mailer.ErrConfigMissing},
		{name: "missing sender", cfg: Config{APIKey: "re_123"}, wantErr: mailer.ErrConfigMissing},
		{name: "valid", cfg: Config{APIKey: "re_123", SenderEmail: "finance@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := New(tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sender.emails)
		})
	}
}

func TestSender_Send(t *testing.T) {
	fake := &fakeEmails{}
	sender := &Sender{emails: fake, config: Config{SenderName: "財務處", SenderEmail: "finance@example.com"}}

	err := sender.Send(context.Background(), &mailer.Email{
		To:      "alice@example.com",
		ToName:  "Alice",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	})
	require.NoError(t, err)
	require.Len(t, fake.reqs, 1)

	req := fake.reqs[0]
	assert.Equal(t, "財務處 <finance@example.com>", req.From)
	assert.Equal(t, []string{"Alice <alice@example.com>"}, req.To)
	assert.Equal(t, "Hello", req.Subject)
	assert.Equal(t, "<p>Hi</p>", req.Html)
	assert.Equal(t, "Hi", req.Text)
}

func TestSender_Send_Error(t *testing.T) {
	apiErr := errors.New("[ERROR]: API key is invalid")
	sender := &Sender{emails: &fakeEmails{err: apiErr}, config: Config{SenderEmail: "finance@example.com"}}

	err := sender.Send(context.Background(), &mailer.Email{To: "alice@example.com"})
	require.ErrorIs(t, err, apiErr)
}
