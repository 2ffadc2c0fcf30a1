package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/phoffmann/entitysync/internal/worker/fault"
	idspkg "github.com/phoffmann/entitysync/internal/worker/ids"
	"github.com/phoffmann/entitysync/internal/worker/jsoncodec"
	loggingpkg "github.com/phoffmann/entitysync/internal/worker/logging"
	metadatapkg "github.com/phoffmann/entitysync/internal/worker/metadata"
)

// Outcome is the broker action taken after a consume attempt.
type Outcome int

const (
	// OutcomeAck acknowledges the message; processing succeeded.
	OutcomeAck Outcome = iota
	// OutcomeDrop acknowledges the message without processing it. Used for
	// entity types with no registered handler.
	OutcomeDrop
	// OutcomeDeadLetter records the message on the dead-letter topic and
	// acknowledges it. The message is never redelivered.
	OutcomeDeadLetter
	// OutcomeRetry negatively acknowledges the message so the broker
	// redelivers it. Redelivery timing is the broker's concern.
	OutcomeRetry
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAck:
		return "ack"
	case OutcomeDrop:
		return "drop"
	case OutcomeDeadLetter:
		return "dead_letter"
	case OutcomeRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// decideOutcome maps a consume error onto the broker action. Terminal
// faults dead-letter, unroutable entity types are dropped, everything else
// is redelivered.
func decideOutcome(err error) Outcome {
	if err == nil {
		return OutcomeAck
	}
	kind := fault.KindOf(err)
	switch {
	case kind == fault.KindUnroutable:
		return OutcomeDrop
	case kind.Terminal():
		return OutcomeDeadLetter
	default:
		return OutcomeRetry
	}
}

// DeadLetter is the record published for a terminally failed message. It
// carries the original payload and metadata so the failure can be inspected
// and replayed.
type DeadLetter struct {
	MessageID string               `json:"messageId"`
	Queue     string               `json:"queue"`
	Payload   json.RawMessage      `json:"payload"`
	Metadata  metadatapkg.Metadata `json:"metadata,omitempty"`
	Kind      string               `json:"kind"`
	Reason    string               `json:"reason"`
	FailedAt  time.Time            `json:"failedAt"`
}

// DeadLetterSink persists dead-letter records beyond the dead-letter topic,
// typically into a database table for inspection.
type DeadLetterSink interface {
	Record(ctx context.Context, letter DeadLetter) error
}

// deadLetter publishes the record to the dead-letter topic and, when a sink
// is configured, persists it there as well. A publish failure is returned
// so the caller can requeue instead of losing the message; a sink failure
// is only logged.
func (s *Service) deadLetter(msg *message.Message, queue string, cause error) error {
	letter := DeadLetter{
		MessageID: msg.UUID,
		Queue:     queue,
		Payload:   json.RawMessage(msg.Payload),
		Metadata:  metadatapkg.FromWatermill(msg.Metadata),
		Kind:      fault.KindOf(cause).String(),
		Reason:    cause.Error(),
		FailedAt:  time.Now().UTC(),
	}

	payload, err := jsoncodec.Marshal(letter)
	if err != nil {
		return err
	}

	out := message.NewMessage(idspkg.NewMessageID(), payload)
	out.Metadata = metadatapkg.ToWatermill(letter.Metadata)
	out.Metadata["dead_letter_kind"] = letter.Kind
	out.Metadata["dead_letter_queue"] = queue
	if err := s.publisher.Publish(s.Conf.DeadLetterTopic(), out); err != nil {
		return err
	}

	if s.sink != nil {
		if err := s.sink.Record(msg.Context(), letter); err != nil {
			s.Logger.Error("Failed to persist dead letter record", err, loggingpkg.LogFields{
				"message_uuid": msg.UUID,
				"queue":        queue,
			})
		}
	}

	return nil
}
