package worker

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/phoffmann/entitysync/internal/worker/envelope"
	errspkg "github.com/phoffmann/entitysync/internal/worker/errors"
	idspkg "github.com/phoffmann/entitysync/internal/worker/ids"
	metadatapkg "github.com/phoffmann/entitysync/internal/worker/metadata"
)

// NewMessageFromEnvelope converts an envelope into a Watermill message with
// a fresh ULID and the supplied metadata.
func NewMessageFromEnvelope(env *envelope.Envelope, metadata metadatapkg.Metadata) (*message.Message, error) {
	if env == nil {
		return nil, errspkg.ErrEnvelopeRequired
	}

	payload, err := env.Encode()
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(idspkg.NewMessageID(), payload)
	msg.Metadata = metadatapkg.ToWatermill(metadata)
	msg.Metadata["entity_type"] = env.EntityType
	return msg, nil
}

// PublishEnvelope encodes the envelope and publishes it to the provided
// topic. Used by producers and by tests to drive the consume loops.
func PublishEnvelope(ctx context.Context, publisher message.Publisher, topic string, env *envelope.Envelope, metadata metadatapkg.Metadata) error {
	if publisher == nil {
		return errspkg.ErrPublisherRequired
	}
	if topic == "" {
		return errspkg.ErrTopicRequired
	}

	msg, err := NewMessageFromEnvelope(env, metadata)
	if err != nil {
		return err
	}

	if ctx != nil {
		msg.SetContext(ctx)
	}

	return publisher.Publish(topic, msg)
}

// PublishEnvelope emits the envelope through the Service publisher so
// callers can enqueue work without touching the Watermill APIs directly.
func (s *Service) PublishEnvelope(ctx context.Context, topic string, env *envelope.Envelope, metadata metadatapkg.Metadata) error {
	if s == nil {
		return errors.New("entity sync service is nil")
	}
	return PublishEnvelope(ctx, s.publisher, topic, env, metadata)
}
