package appointments

import (
	"appointment-service/internal/pkg/constvars"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testCoreNamespace = "appointments_core.appointments"

func TestAppointmentMongoRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Found", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.Client, "appointments_core")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testCoreNamespace, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "a-1"},
			{Key: "insuredId", Value: "12345"},
			{Key: "scheduleId", Value: int64(100)},
			{Key: "countryCode", Value: "PE"},
			{Key: "status", Value: "pending"},
		}))

		appointment, err := repo.FindByID(context.Background(), "a-1")
		require.NoError(t, err)
		require.NotNil(t, appointment)
		assert.Equal(t, "12345", appointment.InsuredID)
		assert.Equal(t, int64(100), appointment.ScheduleID)
		assert.Equal(t, constvars.AppointmentStatusPending, appointment.Status)
	})

	mt.Run("Not Found", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.Client, "appointments_core")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testCoreNamespace, mtest.FirstBatch))

		appointment, err := repo.FindByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, appointment)
	})
}

func TestAppointmentMongoRepository_FindByInsuredID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Lists Every Record", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.Client, "appointments_core")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testCoreNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a-1"}, {Key: "insuredId", Value: "12345"}},
			bson.D{{Key: "_id", Value: "a-2"}, {Key: "insuredId", Value: "12345"}},
		))

		appointments, err := repo.FindByInsuredID(context.Background(), "12345")
		require.NoError(t, err)
		assert.Len(t, appointments, 2)
	})

	mt.Run("Empty Is Not Nil", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.Client, "appointments_core")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testCoreNamespace, mtest.FirstBatch))

		appointments, err := repo.FindByInsuredID(context.Background(), "54321")
		require.NoError(t, err)
		assert.NotNil(t, appointments)
		assert.Empty(t, appointments)
	})
}

func TestAppointmentMongoRepository_UpdateStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Changed", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.Client, "appointments_core")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		changed, err := repo.UpdateStatus(context.Background(), "a-1", constvars.AppointmentStatusConfirmed, time.Now())
		require.NoError(t, err)
		assert.True(t, changed)
	})

	mt.Run("Already In Status", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.Client, "appointments_core")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		changed, err := repo.UpdateStatus(context.Background(), "a-1", constvars.AppointmentStatusConfirmed, time.Now())
		require.NoError(t, err)
		assert.False(t, changed)
	})

	mt.Run("Command Error", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.Client, "appointments_core")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, err := repo.UpdateStatus(context.Background(), "a-1", constvars.AppointmentStatusConfirmed, time.Now())
		assert.Error(t, err)
	})
}
