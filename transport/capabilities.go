package transport

// Capabilities describes the features supported by a transport backend.
// The worker relies on SupportsNack to guarantee requeue semantics for
// transient failures; everything else is introspection.
type Capabilities struct {
	// SupportsOrdering indicates the transport guarantees per-queue
	// delivery order.
	SupportsOrdering bool

	// SupportsAck indicates the transport supports explicit message
	// acknowledgment.
	SupportsAck bool

	// SupportsNack indicates the transport supports negative
	// acknowledgment with redelivery.
	SupportsNack bool

	// SupportsNativeDLQ indicates the broker has built-in dead-letter
	// queue support. When false, the worker routes dead letters itself.
	SupportsNativeDLQ bool

	// SupportsPrefetchLimit indicates the transport can bound in-flight
	// deliveries per consumer. The worker configures a limit of one.
	SupportsPrefetchLimit bool

	// Name is the human-readable name of the transport.
	Name string
}

// SupportsReliableDelivery returns true if the transport supports
// at-least-once delivery semantics (ack + nack).
func (c Capabilities) SupportsReliableDelivery() bool {
	return c.SupportsAck && c.SupportsNack
}

// Predefined capability sets for the built-in transports.
var (
	// ChannelCapabilities for the in-memory Go channel transport.
	ChannelCapabilities = Capabilities{
		Name:                  "channel",
		SupportsOrdering:      true,
		SupportsAck:           true,
		SupportsNack:          true,
		SupportsNativeDLQ:     false,
		SupportsPrefetchLimit: true,
	}

	// RabbitMQCapabilities for the AMQP transport.
	RabbitMQCapabilities = Capabilities{
		Name:                  "rabbitmq",
		SupportsOrdering:      true,
		SupportsAck:           true,
		SupportsNack:          true,
		SupportsNativeDLQ:     true,
		SupportsPrefetchLimit: true,
	}

	// AWSCapabilities for the SNS/SQS transport.
	AWSCapabilities = Capabilities{
		Name:                  "aws",
		SupportsOrdering:      false,
		SupportsAck:           true,
		SupportsNack:          true,
		SupportsNativeDLQ:     true,
		SupportsPrefetchLimit: true,
	}
)

// GetCapabilities returns the capabilities for a transport by name using
// the default registry.
func GetCapabilities(transportName string) Capabilities {
	return DefaultRegistry.GetCapabilities(transportName)
}
