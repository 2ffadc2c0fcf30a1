package worker

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	handlerpkg "github.com/phoffmann/entitysync/internal/worker/handler"
	idspkg "github.com/phoffmann/entitysync/internal/worker/ids"
	"github.com/phoffmann/entitysync/internal/worker/jsoncodec"
)

type orderConfirmationEvent struct {
	OrderID       int64  `json:"orderId"`
	CustomerEmail string `json:"customerEmail"`
}

type pickingSlipEvent struct {
	OrderID int64 `json:"orderId"`
}

// publishNotifier emits order follow-up events onto the transport. Topics
// left empty disable the corresponding event.
type publishNotifier struct {
	publisher         message.Publisher
	confirmationTopic string
	pickingSlipTopic  string
}

// NewPublishNotifier returns a handler.Notifier that publishes order
// confirmation and picking slip events to the given topics.
func NewPublishNotifier(publisher message.Publisher, confirmationTopic, pickingSlipTopic string) handlerpkg.Notifier {
	return &publishNotifier{
		publisher:         publisher,
		confirmationTopic: confirmationTopic,
		pickingSlipTopic:  pickingSlipTopic,
	}
}

func (n *publishNotifier) OrderConfirmation(ctx context.Context, email string, orderID int64) error {
	if n.confirmationTopic == "" {
		return nil
	}
	return n.publish(ctx, n.confirmationTopic, orderConfirmationEvent{
		OrderID:       orderID,
		CustomerEmail: email,
	})
}

func (n *publishNotifier) PickingSlip(ctx context.Context, orderID int64) error {
	if n.pickingSlipTopic == "" {
		return nil
	}
	return n.publish(ctx, n.pickingSlipTopic, pickingSlipEvent{OrderID: orderID})
}

func (n *publishNotifier) publish(ctx context.Context, topic string, event any) error {
	payload, err := jsoncodec.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(idspkg.NewMessageID(), payload)
	if ctx != nil {
		msg.SetContext(ctx)
	}
	return n.publisher.Publish(topic, msg)
}
