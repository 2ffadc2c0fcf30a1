package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities_SupportsReliableDelivery(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		want bool
	}{
		{"ack and nack", Capabilities{SupportsAck: true, SupportsNack: true}, true},
		{"ack only", Capabilities{SupportsAck: true}, false},
		{"nack only", Capabilities{SupportsNack: true}, false},
		{"neither", Capabilities{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.caps.SupportsReliableDelivery())
		})
	}
}

// Every built-in backend must support ack and nack; the consumer's
// requeue behaviour depends on it.
func TestPredefinedCapabilities(t *testing.T) {
	t.Run("channel", func(t *testing.T) {
		assert.Equal(t, "channel", ChannelCapabilities.Name)
		assert.True(t, ChannelCapabilities.SupportsReliableDelivery())
		assert.True(t, ChannelCapabilities.SupportsOrdering)
		assert.False(t, ChannelCapabilities.SupportsNativeDLQ)
	})

	t.Run("rabbitmq", func(t *testing.T) {
		assert.Equal(t, "rabbitmq", RabbitMQCapabilities.Name)
		assert.True(t, RabbitMQCapabilities.SupportsReliableDelivery())
		assert.True(t, RabbitMQCapabilities.SupportsNativeDLQ)
		assert.True(t, RabbitMQCapabilities.SupportsPrefetchLimit)
	})

	t.Run("aws", func(t *testing.T) {
		assert.Equal(t, "aws", AWSCapabilities.Name)
		assert.True(t, AWSCapabilities.SupportsReliableDelivery())
		assert.True(t, AWSCapabilities.SupportsNativeDLQ)
		assert.False(t, AWSCapabilities.SupportsOrdering)
	})
}

func TestCapabilities_ZeroValue(t *testing.T) {
	var caps Capabilities
	assert.False(t, caps.SupportsOrdering)
	assert.False(t, caps.SupportsNativeDLQ)
	assert.False(t, caps.SupportsReliableDelivery())
}
