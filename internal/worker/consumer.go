package worker

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/phoffmann/entitysync/internal/worker/envelope"
	errspkg "github.com/phoffmann/entitysync/internal/worker/errors"
	"github.com/phoffmann/entitysync/internal/worker/fault"
	handlerpkg "github.com/phoffmann/entitysync/internal/worker/handler"
	loggingpkg "github.com/phoffmann/entitysync/internal/worker/logging"
)

// EntityConsumerRegistration wires one consume loop for one entity type.
// The queue defaults to the configured prefix plus the lowercased entity
// type; override it only when the broker topology differs.
type EntityConsumerRegistration struct {
	EntityType envelope.EntityType
	Queue      string
	Registry   *handlerpkg.Registry
	Subscriber message.Subscriber
}

// RegisterEntityConsumer attaches a consume loop for the entity type to the
// service router. Each registered consumer reads its own queue, one message
// at a time, and acknowledges according to the failure taxonomy.
func RegisterEntityConsumer(svc *Service, cfg EntityConsumerRegistration) error {
	if svc == nil {
		return errspkg.ErrServiceRequired
	}
	if cfg.EntityType == "" {
		return errspkg.ErrEntityTypeRequired
	}
	if cfg.Registry == nil {
		return errspkg.ErrRegistryRequired
	}

	queue := cfg.Queue
	if queue == "" {
		queue = cfg.EntityType.Queue(svc.Conf.Prefix())
	}
	subscriber := cfg.Subscriber
	if subscriber == nil {
		subscriber = svc.subscriber
	}

	name := fmt.Sprintf("%s-consumer", queue)
	stats := newConsumerStats()
	info := &ConsumerInfo{
		Name:       name,
		EntityType: string(cfg.EntityType),
		Queue:      queue,
		Stats:      stats,
	}

	svc.consumersMu.Lock()
	svc.consumers = append(svc.consumers, info)
	svc.consumersMu.Unlock()

	svc.router.AddNoPublisherHandler(
		name,
		queue,
		subscriber,
		svc.wrapAckDecision(queue, stats, svc.processEnvelope(cfg.Registry)),
	)

	return nil
}

// processEnvelope is the per-message pipeline: decode the envelope, route it
// to the handler for its entity type, and dispatch by instruction. All
// failures surface as typed faults or gateway errors; the ack decision is
// made by the wrapper, never here.
func (s *Service) processEnvelope(registry *handlerpkg.Registry) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		env, err := envelope.Decode(msg.Payload)
		if err != nil {
			return err
		}

		h, ok := registry.Route(env.EntityType)
		if !ok {
			return &fault.UnroutableError{EntityType: env.EntityType}
		}

		switch env.Instruction {
		case envelope.InstructionCreate:
			_, err = h.HandleCreate(msg.Context(), env.Payload)
		case envelope.InstructionUpdate:
			_, err = h.HandleUpdate(msg.Context(), *env.ID, env.Payload)
		default:
			err = &fault.MalformedEnvelopeError{
				Reason: fmt.Sprintf("unsupported instruction %q", env.Instruction),
			}
		}
		return err
	}
}

// wrapAckDecision turns the pipeline's error into the broker action.
// Returning nil acknowledges the message, returning an error makes the
// router nack it so the broker redelivers. Dead-lettered and dropped
// messages are acknowledged after the decision is recorded.
func (s *Service) wrapAckDecision(queue string, stats *ConsumerStats, next message.NoPublishHandlerFunc) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		start := time.Now()
		err := runConsumer(next, msg)
		outcome := decideOutcome(err)
		stats.observe(outcome, time.Since(start), err)

		switch outcome {
		case OutcomeAck:
			return nil

		case OutcomeDrop:
			s.Logger.Info("Dropping message for unhandled entity type", loggingpkg.LogFields{
				"message_uuid": msg.UUID,
				"queue":        queue,
				"reason":       err.Error(),
			})
			return nil

		case OutcomeDeadLetter:
			if dlErr := s.deadLetter(msg, queue, err); dlErr != nil {
				s.Logger.Error("Failed to dead-letter message, requeueing", dlErr, loggingpkg.LogFields{
					"message_uuid": msg.UUID,
					"queue":        queue,
				})
				return err
			}
			s.Logger.Info("Dead-lettered message", loggingpkg.LogFields{
				"message_uuid": msg.UUID,
				"queue":        queue,
				"kind":         fault.KindOf(err).String(),
				"reason":       err.Error(),
			})
			return nil

		default:
			s.Logger.Error("Processing failed, message will be redelivered", err, loggingpkg.LogFields{
				"message_uuid": msg.UUID,
				"queue":        queue,
			})
			return err
		}
	}
}

// runConsumer invokes the pipeline and converts panics into transient
// errors so a panicking handler nacks instead of killing the router.
func runConsumer(next message.NoPublishHandlerFunc, msg *message.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("consumer panic: %v", r)
		}
	}()
	return next(msg)
}
