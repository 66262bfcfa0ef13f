package eventbus

import "appointment-service/internal/pkg/exceptions"

type Disposition int

const (
	// Ack removes the delivery.
	Ack Disposition = iota
	// Requeue hands the delivery back to the broker for another attempt.
	Requeue
	// DeadLetter moves the delivery to the DLQ of its queue.
	DeadLetter
)

func (d Disposition) String() string {
	switch d {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	case DeadLetter:
		return "dead_letter"
	default:
		return "unknown"
	}
}

// Decide maps a handler result to a disposition. Only malformed payloads are
// dead lettered, every other failure is retried through the broker.
func Decide(err error) Disposition {
	if err == nil {
		return Ack
	}
	if exceptions.IsMalformedMessage(err) {
		return DeadLetter
	}
	return Requeue
}
