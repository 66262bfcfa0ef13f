package eventbus

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/utils"
	"context"
	"strings"
	"sync"
	"time"
)

type memoryMessage struct {
	messageID string
	body      []byte
	attempts  int
}

type binding struct {
	exchange string
	pattern  string
	queue    string
}

// MemoryBus routes messages in process with the same topic semantics as the
// RabbitMQ topology. Used by tests.
type MemoryBus struct {
	mu          sync.Mutex
	topology    Topology
	bindings    []binding
	queues      map[string][]memoryMessage
	deadLetters map[string][][]byte
	notify      map[string]chan struct{}
}

// requeueDelay paces redelivery of requeued messages in Consume.
const requeueDelay = 20 * time.Millisecond

func NewMemoryBus(topology Topology) *MemoryBus {
	return &MemoryBus{
		topology:    topology,
		queues:      map[string][]memoryMessage{},
		deadLetters: map[string][][]byte{},
		notify:      map[string]chan struct{}{},
	}
}

func (b *MemoryBus) DeclareTopology(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bindings = []binding{
		{exchange: b.topology.AppointmentExchange, pattern: constvars.RoutingKeyAppointmentCreatedAll, queue: b.topology.AppointmentCreatedQueue},
		{exchange: b.topology.StatusExchange, pattern: constvars.RoutingKeyAppointmentStatusUpdate, queue: b.topology.StatusUpdateQueue},
	}
	b.ensureQueue(b.topology.AppointmentCreatedQueue)
	b.ensureQueue(b.topology.StatusUpdateQueue)
	for _, queue := range b.topology.CountryQueues {
		b.ensureQueue(queue)
	}
	return nil
}

func (b *MemoryBus) ensureQueue(queue string) {
	if _, ok := b.queues[queue]; !ok {
		b.queues[queue] = nil
	}
	b.notifier(queue)
}

// notifier returns the wakeup channel of one queue. Callers hold mu.
func (b *MemoryBus) notifier(queue string) chan struct{} {
	ch, ok := b.notify[queue]
	if !ok {
		ch = make(chan struct{}, 1)
		b.notify[queue] = ch
	}
	return ch
}

func (b *MemoryBus) enqueue(queue string, message memoryMessage) {
	b.queues[queue] = append(b.queues[queue], message)
	select {
	case b.notifier(queue) <- struct{}{}:
	default:
	}
}

// Publish drops messages nothing is bound to, as a broker does for unroutable
// non mandatory publishes.
func (b *MemoryBus) Publish(ctx context.Context, exchange, routingKey, messageID string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	message := memoryMessage{messageID: messageID, body: append([]byte(nil), body...)}
	if exchange == "" {
		if _, ok := b.queues[routingKey]; ok {
			b.enqueue(routingKey, message)
		}
		return nil
	}
	for _, bound := range b.bindings {
		if bound.exchange == exchange && topicMatches(bound.pattern, routingKey) {
			b.enqueue(bound.queue, message)
		}
	}
	return nil
}

func (b *MemoryBus) Consume(ctx context.Context, queue string, handler contracts.MessageHandler) error {
	b.mu.Lock()
	wakeup := b.notifier(queue)
	b.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return nil
		}
		processed := b.Drain(ctx, queue, handler)
		if processed > 0 && b.Pending(queue) == 0 {
			continue
		}

		var retry <-chan time.Time
		if b.Pending(queue) > 0 {
			retry = time.After(requeueDelay)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-wakeup:
		case <-retry:
		}
	}
}

// Drain runs handler over the messages queued right now and returns how many it
// processed. Requeued messages wait for the next call.
func (b *MemoryBus) Drain(ctx context.Context, queue string, handler contracts.MessageHandler) int {
	b.mu.Lock()
	batch := b.queues[queue]
	b.queues[queue] = nil
	b.mu.Unlock()

	for _, message := range batch {
		message.attempts++
		err := handler(utils.WithMessageID(ctx, message.messageID), message.messageID, message.body)

		b.mu.Lock()
		switch Decide(err) {
		case Requeue:
			b.queues[queue] = append(b.queues[queue], message)
		case DeadLetter:
			dlq := DeadLetterQueue(queue)
			b.deadLetters[dlq] = append(b.deadLetters[dlq], message.body)
		}
		b.mu.Unlock()
	}
	return len(batch)
}

func (b *MemoryBus) Pending(queue string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queues[queue])
}

func (b *MemoryBus) DeadLetters(queue string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deadLetters[DeadLetterQueue(queue)]
}

func (b *MemoryBus) Close() error {
	return nil
}

// topicMatches implements AMQP topic matching: "*" is one word, "#" is zero or more.
func topicMatches(pattern, routingKey string) bool {
	return matchWords(strings.Split(pattern, "."), strings.Split(routingKey, "."))
}

func matchWords(pattern, key []string) bool {
	if len(pattern) == 0 {
		return len(key) == 0
	}
	switch pattern[0] {
	case "#":
		for i := 0; i <= len(key); i++ {
			if matchWords(pattern[1:], key[i:]) {
				return true
			}
		}
		return false
	case "*":
		return len(key) > 0 && matchWords(pattern[1:], key[1:])
	default:
		return len(key) > 0 && pattern[0] == key[0] && matchWords(pattern[1:], key[1:])
	}
}
