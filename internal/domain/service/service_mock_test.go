package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/logger"
	"github.com/diegoclair/monthly-report/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager  *mocks.MockDataManager
	mockStaffRepo    *mocks.MockStaffRepo
	mockReportRepo   *mocks.MockReportRepo
	mockMailSender   *mocks.MockMailSender
	mockRunNotifier  *mocks.MockRunNotifier
	mockRosterSource *mocks.MockRosterSource
}

var taipei = time.FixedZone("Asia/Taipei", 8*60*60)

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	staffRepo := mocks.NewMockStaffRepo(ctrl)
	dm.EXPECT().Staff().Return(staffRepo).AnyTimes()

	reportRepo := mocks.NewMockReportRepo(ctrl)
	dm.EXPECT().Report().Return(reportRepo).AnyTimes()

	// transactions run against the same mocks
	dm.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(contract.DataManager) error) error {
			return fn(dm)
		},
	).AnyTimes()

	m = allMocks{
		mockDataManager:  dm,
		mockStaffRepo:    staffRepo,
		mockReportRepo:   reportRepo,
		mockMailSender:   mocks.NewMockMailSender(ctrl),
		mockRunNotifier:  mocks.NewMockRunNotifier(ctrl),
		mockRosterSource: mocks.NewMockRosterSource(ctrl),
	}

	return
}

// newTestScheduler builds a scheduler in Asia/Taipei whose clock never moves
// unless the test calls tick with an explicit time.
func newTestScheduler(t *testing.T, m allMocks, notifier contract.RunNotifier) *scheduler {
	t.Helper()

	var runs atomic.Int64
	s, err := newScheduler(m.mockDataManager, m.mockMailSender, notifier, Config{
		Location:    taipei,
		SendTimeout: time.Second,
		Logger:      logger.NewNope(),
		Now: func() time.Time {
			return time.Date(2026, 1, 1, 0, 0, 0, 0, taipei)
		},
		NewRunID: func() string {
			return fmt.Sprintf("run-%d", runs.Add(1))
		},
	})
	require.NoError(t, err)
	require.NotNil(t, s)

	return s
}
