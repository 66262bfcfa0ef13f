package eventbus

import (
	"appointment-service/internal/app/config"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/dto/events"
	"appointment-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testTopology() Topology {
	return NewTopology(config.AppRabbitMQ{
		AppointmentExchange:     constvars.DefaultAppointmentExchange,
		StatusExchange:          constvars.DefaultAppointmentStatusExchange,
		AppointmentCreatedQueue: constvars.DefaultAppointmentCreatedQueue,
		StatusUpdateQueue:       constvars.DefaultAppointmentStatusQueue,
		CountryQueueFormat:      constvars.DefaultCountryQueueFormat,
	}, []string{"CL", "pe"})
}

func TestNewTopology_CountryQueues(t *testing.T) {
	topology := testTopology()

	queue, ok := topology.CountryQueue("cl")
	require.True(t, ok)
	assert.Equal(t, "appointment_cl_queue", queue)

	queue, ok = topology.CountryQueue("PE")
	require.True(t, ok)
	assert.Equal(t, "appointment_pe_queue", queue)

	_, ok = topology.CountryQueue("BR")
	assert.False(t, ok)

	assert.Equal(t, "appointment.created.CL", CreatedRoutingKey("cl"))
	assert.Equal(t, "appointment_cl_queue_dlq", DeadLetterQueue("appointment_cl_queue"))
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Disposition
	}{
		{"success", nil, Ack},
		{"malformed", exceptions.ErrMalformedMessage(errors.New("bad json"), "queue"), DeadLetter},
		{"routing", exceptions.ErrRoutingNoChannel(nil, "BR"), Requeue},
		{"transient", exceptions.ErrMongoDBFindDocument(errors.New("timeout")), Requeue},
		{"plain", errors.New("boom"), Requeue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.err))
		})
	}
}

func TestTopicMatches(t *testing.T) {
	assert.True(t, topicMatches("appointment.created.*", "appointment.created.CL"))
	assert.False(t, topicMatches("appointment.created.*", "appointment.created"))
	assert.False(t, topicMatches("appointment.created.*", "appointment.created.CL.extra"))
	assert.True(t, topicMatches("appointment.#", "appointment.created.CL"))
	assert.True(t, topicMatches("appointment.status.updated", "appointment.status.updated"))
	assert.False(t, topicMatches("appointment.status.updated", "appointment.status"))
}

func TestMemoryBus_PublishersRouteThroughTopology(t *testing.T) {
	topology := testTopology()
	bus := NewMemoryBus(topology)
	ctx := context.Background()
	require.NoError(t, bus.DeclareTopology(ctx))

	creation := NewCreationFactPublisher(bus, topology, zap.NewNop())
	outcome := NewOutcomeFactPublisher(bus, topology, zap.NewNop())

	fact := events.CreationFact{
		AppointmentID: "a-1",
		InsuredID:     "12345",
		ScheduleID:    100,
		CountryCode:   "CL",
		Status:        string(constvars.AppointmentStatusPending),
		CreatedAt:     time.Now(),
		EventType:     constvars.EventTypeAppointmentCreated,
	}
	require.NoError(t, creation.PublishCreationFact(ctx, fact))
	require.NoError(t, outcome.PublishOutcomeFact(ctx, events.OutcomeFact{
		ID:            "o-1",
		AppointmentID: "a-1",
		Status:        string(constvars.AppointmentStatusConfirmed),
		Timestamp:     time.Now(),
		Action:        constvars.EventActionUpdateStatus,
	}))

	assert.Equal(t, 1, bus.Pending(topology.AppointmentCreatedQueue))
	assert.Equal(t, 1, bus.Pending(topology.StatusUpdateQueue))

	var decoded *events.CreationFact
	processed := bus.Drain(ctx, topology.AppointmentCreatedQueue, func(ctx context.Context, messageID string, body []byte) error {
		var err error
		decoded, err = events.DecodeCreationFact(body)
		return err
	})
	assert.Equal(t, 1, processed)
	require.NotNil(t, decoded)
	assert.Equal(t, fact.AppointmentID, decoded.AppointmentID)
	assert.Equal(t, fact.ScheduleID, decoded.ScheduleID)
}

func TestMemoryBus_DrainSettlesByDisposition(t *testing.T) {
	topology := testTopology()
	bus := NewMemoryBus(topology)
	ctx := context.Background()
	require.NoError(t, bus.DeclareTopology(ctx))

	queue, _ := topology.CountryQueue("CL")
	channel := NewCountryChannel(bus, queue)
	require.NoError(t, channel.Send(ctx, events.CreationFact{AppointmentID: "requeue-me", CountryCode: "CL"}))
	require.NoError(t, channel.Send(ctx, events.CreationFact{AppointmentID: "poison", CountryCode: "CL"}))

	handler := func(ctx context.Context, messageID string, body []byte) error {
		fact, err := events.DecodeCreationFact(body)
		require.NoError(t, err)
		if fact.AppointmentID == "poison" {
			return exceptions.ErrMalformedMessage(nil, queue)
		}
		return errors.New("store unavailable")
	}

	assert.Equal(t, 2, bus.Drain(ctx, queue, handler))
	assert.Equal(t, 1, bus.Pending(queue))
	assert.Len(t, bus.DeadLetters(queue), 1)
}

func TestMemoryBus_UnboundPublishIsDropped(t *testing.T) {
	bus := NewMemoryBus(testTopology())
	ctx := context.Background()
	require.NoError(t, bus.DeclareTopology(ctx))

	require.NoError(t, bus.Publish(ctx, constvars.DefaultAppointmentExchange, "appointment.deleted.CL", "m-1", []byte("{}")))
	assert.Equal(t, 0, bus.Pending(constvars.DefaultAppointmentCreatedQueue))
}

func TestMemoryBus_ConsumeWakesEveryQueue(t *testing.T) {
	topology := testTopology()
	bus := NewMemoryBus(topology)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, bus.DeclareTopology(ctx))

	clQueue, _ := topology.CountryQueue("CL")
	peQueue, _ := topology.CountryQueue("PE")
	received := map[string]chan string{
		clQueue: make(chan string, 10),
		peQueue: make(chan string, 10),
	}

	stopped := make(chan struct{}, 2)
	for queue, out := range received {
		queue, out := queue, out
		go func() {
			_ = bus.Consume(ctx, queue, func(ctx context.Context, messageID string, body []byte) error {
				out <- messageID
				return nil
			})
			stopped <- struct{}{}
		}()
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(ctx, "", clQueue, "cl-message", []byte("{}")))
		require.NoError(t, bus.Publish(ctx, "", peQueue, "pe-message", []byte("{}")))
	}

	for queue, out := range received {
		for i := 0; i < 5; i++ {
			select {
			case <-out:
			case <-time.After(2 * time.Second):
				t.Fatalf("consumer of %s was never woken for message %d", queue, i+1)
			}
		}
	}

	cancel()
	for i := 0; i < 2; i++ {
		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
			t.Fatal("Consume did not return after cancel")
		}
	}
}

func TestMemoryBus_ConsumeRetriesRequeued(t *testing.T) {
	topology := testTopology()
	bus := NewMemoryBus(topology)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, bus.DeclareTopology(ctx))
	queue, _ := topology.CountryQueue("CL")

	attempts := make(chan int, 10)
	count := 0
	go func() {
		_ = bus.Consume(ctx, queue, func(ctx context.Context, messageID string, body []byte) error {
			count++
			attempts <- count
			if count < 3 {
				return errors.New("store unavailable")
			}
			return nil
		})
	}()
	require.NoError(t, bus.Publish(ctx, "", queue, "m-1", []byte("{}")))

	for want := 1; want <= 3; want++ {
		select {
		case got := <-attempts:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("attempt %d never ran", want)
		}
	}
}
