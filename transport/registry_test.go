package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConfig struct {
	pubSubSystem string
}

func (m *mockConfig) GetPubSubSystem() string       { return m.pubSubSystem }
func (m *mockConfig) GetRabbitMQURL() string        { return "" }
func (m *mockConfig) GetAWSRegion() string          { return "" }
func (m *mockConfig) GetAWSAccountID() string       { return "" }
func (m *mockConfig) GetAWSAccessKeyID() string     { return "" }
func (m *mockConfig) GetAWSSecretAccessKey() string { return "" }
func (m *mockConfig) GetAWSEndpoint() string        { return "" }

type mockPublisher struct{}

func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error { return nil }
func (m *mockPublisher) Close() error                                             { return nil }

type mockSubscriber struct{}

func (m *mockSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (m *mockSubscriber) Close() error { return nil }

func mockBuilder(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (Transport, error) {
	return Transport{Publisher: &mockPublisher{}, Subscriber: &mockSubscriber{}}, nil
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.Names())
	assert.False(t, reg.Has("test-transport"))

	reg.Register("test-transport", mockBuilder)
	assert.True(t, reg.Has("test-transport"))
	assert.Contains(t, reg.Names(), "test-transport")

	tr, err := reg.Build(context.Background(), &mockConfig{pubSubSystem: "test-transport"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, tr.Publisher)
	assert.NotNil(t, tr.Subscriber)
}

func TestRegistry_RegisterWithCapabilities(t *testing.T) {
	reg := NewRegistry()

	caps := Capabilities{
		Name:              "test-transport",
		SupportsNack:      true,
		SupportsNativeDLQ: true,
	}
	reg.RegisterWithCapabilities("test-transport", mockBuilder, caps)

	assert.True(t, reg.Has("test-transport"))
	got := reg.GetCapabilities("test-transport")
	assert.Equal(t, "test-transport", got.Name)
	assert.True(t, got.SupportsNack)
	assert.True(t, got.SupportsNativeDLQ)
}

func TestRegistry_GetCapabilities_Unknown(t *testing.T) {
	reg := NewRegistry()
	caps := reg.GetCapabilities("unknown")
	assert.Equal(t, "unknown", caps.Name)
	assert.False(t, caps.SupportsNack)
	assert.False(t, caps.SupportsNativeDLQ)
}

func TestRegistry_Build_NilConfig(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Build(context.Background(), nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")
}

func TestRegistry_Build_UnknownTransport(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Build(context.Background(), &mockConfig{pubSubSystem: "unknown-transport"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

func TestRegistry_Build_BuilderError(t *testing.T) {
	reg := NewRegistry()

	expectedErr := errors.New("builder error")
	reg.Register("failing-transport", func(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (Transport, error) {
		return Transport{}, expectedErr
	})

	_, err := reg.Build(context.Background(), &mockConfig{pubSubSystem: "failing-transport"}, nil)
	assert.Equal(t, expectedErr, err)
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry()
	reg.Register("transport1", mockBuilder)
	reg.Register("transport2", mockBuilder)
	reg.Register("transport3", mockBuilder)

	names := reg.Names()
	assert.Len(t, names, 3)
	assert.Contains(t, names, "transport1")
	assert.Contains(t, names, "transport2")
	assert.Contains(t, names, "transport3")
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				reg.Register("transport", mockBuilder)
				reg.Has("transport")
				reg.Names()
				reg.GetCapabilities("transport")
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	assert.True(t, reg.Has("transport"))
}

func TestDefaultRegistry(t *testing.T) {
	assert.NotNil(t, DefaultRegistry)

	// The built-in backends register themselves in init, but those
	// packages are not imported here, so an arbitrary name must fail.
	_, err := Build(context.Background(), &mockConfig{pubSubSystem: "nonexistent"}, nil)
	assert.Error(t, err)
}

func TestPackageLevelRegister(t *testing.T) {
	Register("test-pkg-transport", mockBuilder)
	assert.True(t, DefaultRegistry.Has("test-pkg-transport"))

	RegisterWithCapabilities("test-pkg-caps-transport", mockBuilder, Capabilities{
		Name:         "test-pkg-caps-transport",
		SupportsNack: true,
	})
	assert.True(t, DefaultRegistry.Has("test-pkg-caps-transport"))
	assert.True(t, GetCapabilities("test-pkg-caps-transport").SupportsNack)
}
