package audit

import (
	"appointment-service/internal/app/config"
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/dto/requests"
	"appointment-service/internal/pkg/dto/responses"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *mockLocker) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

func (m *mockLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return m.Called(ctx, key, lockValue, expiration).Error(0)
}

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	panic("not used")
}

func (m *mockAppointmentUsecase) FindAppointmentByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	panic("not used")
}

func (m *mockAppointmentUsecase) FindAppointmentsByInsuredID(ctx context.Context, insuredID string) (*responses.InsuredAppointments, error) {
	panic("not used")
}

func (m *mockAppointmentUsecase) UpdateAppointmentStatus(ctx context.Context, fact *events.OutcomeFact) error {
	panic("not used")
}

func (m *mockAppointmentUsecase) FindStalePendingAppointments(ctx context.Context, olderThan time.Duration) ([]models.Appointment, error) {
	args := m.Called(ctx, olderThan)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func testConfig() config.AppPendingAudit {
	return config.AppPendingAudit{CronSpec: "@every 1m", AgeInMinutes: 15, LockKey: "audit", LockTTLInSeconds: 60}
}

func TestRunOnce_LeaderReportsStaleAppointments(t *testing.T) {
	locker := new(mockLocker)
	locker.On("TryLock", mock.Anything, "audit", time.Minute).Return(true, "token", nil)
	locker.On("Unlock", mock.Anything, "audit", "token").Return(nil)

	usecase := new(mockAppointmentUsecase)
	usecase.On("FindStalePendingAppointments", mock.Anything, 15*time.Minute).Return([]models.Appointment{
		{ID: "a-1", CountryCode: "CL"},
		{ID: "a-2", CountryCode: "PE"},
	}, nil)

	worker := NewWorker(zap.NewNop(), testConfig(), locker, usecase)
	assert.Equal(t, 2, worker.RunOnce(context.Background()))
	locker.AssertExpectations(t)
	usecase.AssertExpectations(t)
}

func TestRunOnce_FollowerSkips(t *testing.T) {
	locker := new(mockLocker)
	locker.On("TryLock", mock.Anything, "audit", time.Minute).Return(false, "", nil)
	usecase := new(mockAppointmentUsecase)

	worker := NewWorker(zap.NewNop(), testConfig(), locker, usecase)
	assert.Equal(t, -1, worker.RunOnce(context.Background()))
	usecase.AssertNotCalled(t, "FindStalePendingAppointments", mock.Anything, mock.Anything)
}

func TestRunOnce_LookupFailureReleasesLock(t *testing.T) {
	locker := new(mockLocker)
	locker.On("TryLock", mock.Anything, "audit", time.Minute).Return(true, "token", nil)
	locker.On("Unlock", mock.Anything, "audit", "token").Return(nil).Once()
	usecase := new(mockAppointmentUsecase)
	usecase.On("FindStalePendingAppointments", mock.Anything, mock.Anything).Return(nil, errors.New("mongo down"))

	worker := NewWorker(zap.NewNop(), testConfig(), locker, usecase)
	assert.Equal(t, -1, worker.RunOnce(context.Background()))
	locker.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	cfg := testConfig()
	cfg.CronSpec = "not a cron spec"
	worker := NewWorker(zap.NewNop(), cfg, new(mockLocker), new(mockAppointmentUsecase))

	worker.Start(context.Background())
	worker.Stop()
}

func TestRunOnce_CancelledRunStillReleasesLock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	liveContext := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	locker := new(mockLocker)
	locker.On("TryLock", mock.Anything, "audit", time.Minute).Return(true, "token", nil)
	locker.On("Unlock", liveContext, "audit", "token").Return(nil).Once()

	usecase := new(mockAppointmentUsecase)
	usecase.On("FindStalePendingAppointments", mock.Anything, 15*time.Minute).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled)

	worker := NewWorker(zap.NewNop(), testConfig(), locker, usecase)
	assert.Equal(t, -1, worker.RunOnce(ctx))
	locker.AssertExpectations(t)
}
