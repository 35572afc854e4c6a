package test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diegoclair/monthly-report/internal/handlers"
	"github.com/diegoclair/monthly-report/internal/logger"
	"github.com/diegoclair/monthly-report/mocks"
)

type ServiceMocks struct {
	RosterServiceMock    *mocks.MockRosterService
	SchedulerServiceMock *mocks.MockSchedulerService
	DataManagerMock      *mocks.MockDataManager

	// MailErr is returned by the mail readiness check.
	MailErr error
}

func GetHandlerTest(t *testing.T) (m *ServiceMocks, handler http.Handler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = &ServiceMocks{
		RosterServiceMock:    mocks.NewMockRosterService(ctrl),
		SchedulerServiceMock: mocks.NewMockSchedulerService(ctrl),
		DataManagerMock:      mocks.NewMockDataManager(ctrl),
	}

	mailReady := func(context.Context) error { return m.MailErr }
	handler = handlers.New(m.RosterServiceMock, m.SchedulerServiceMock, m.DataManagerMock, mailReady, logger.NewNope()).Routes()

	return
}

// Do sends a request through the handler and returns the recorded response.
func Do(t *testing.T, handler http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}
