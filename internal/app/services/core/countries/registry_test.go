package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	publisher := new(mockOutcomeFactPublisher)

	registry.Register(NewCountryBookingUsecase("pe", true, NewCountryBookingMemoryRepository("PE"), publisher, zap.NewNop()))
	registry.Register(NewCountryBookingUsecase("CL", true, NewCountryBookingMemoryRepository("CL"), publisher, zap.NewNop()))

	usecase, ok := registry.Lookup("cl")
	require.True(t, ok)
	assert.Equal(t, "CL", usecase.CountryCode())

	_, ok = registry.Lookup("BR")
	assert.False(t, ok)

	assert.Equal(t, []string{"CL", "PE"}, registry.CountryCodes())
}

func TestNewConfirmationWorkers_RequiresUsecasePerQueue(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewCountryBookingUsecase("CL", true, NewCountryBookingMemoryRepository("CL"), new(mockOutcomeFactPublisher), zap.NewNop()))

	workers, err := NewConfirmationWorkers(zap.NewNop(), nil, map[string]string{"CL": "appointment_cl_queue"}, registry)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "appointment_cl_queue", workers[0].Queue())

	_, err = NewConfirmationWorkers(zap.NewNop(), nil, map[string]string{"PE": "appointment_pe_queue"}, registry)
	assert.Error(t, err)
}
