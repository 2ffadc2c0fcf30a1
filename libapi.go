package entitysync

import (
	workerpkg "github.com/phoffmann/entitysync/internal/worker"
	configpkg "github.com/phoffmann/entitysync/internal/worker/config"
	envelopepkg "github.com/phoffmann/entitysync/internal/worker/envelope"
	errspkg "github.com/phoffmann/entitysync/internal/worker/errors"
	faultpkg "github.com/phoffmann/entitysync/internal/worker/fault"
	handlerpkg "github.com/phoffmann/entitysync/internal/worker/handler"
	jsoncodec "github.com/phoffmann/entitysync/internal/worker/jsoncodec"
	loggingpkg "github.com/phoffmann/entitysync/internal/worker/logging"
	metadatapkg "github.com/phoffmann/entitysync/internal/worker/metadata"
	transportpkg "github.com/phoffmann/entitysync/transport"
)

type (
	Config              = configpkg.Config
	Service             = workerpkg.Service
	ServiceDependencies = workerpkg.ServiceDependencies

	EntityConsumerRegistration = workerpkg.EntityConsumerRegistration

	MiddlewareBuilder      = workerpkg.MiddlewareBuilder
	MiddlewareRegistration = workerpkg.MiddlewareRegistration

	DeadLetter     = workerpkg.DeadLetter
	DeadLetterSink = workerpkg.DeadLetterSink
	Outcome        = workerpkg.Outcome

	ConsumerInfo  = workerpkg.ConsumerInfo
	ConsumerStats = workerpkg.ConsumerStats

	Envelope    = envelopepkg.Envelope
	Instruction = envelopepkg.Instruction
	EntityType  = envelopepkg.EntityType

	Handler         = handlerpkg.Handler
	HandlerRegistry = handlerpkg.Registry
	Notifier        = handlerpkg.Notifier
	NoopNotifier    = handlerpkg.NoopNotifier

	FaultKind              = faultpkg.Kind
	MalformedEnvelopeError = faultpkg.MalformedEnvelopeError
	ValidationError        = faultpkg.ValidationError
	NotFoundError          = faultpkg.NotFoundError
	UnroutableError        = faultpkg.UnroutableError

	Metadata = metadatapkg.Metadata

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger
)

const (
	InstructionCreate = envelopepkg.InstructionCreate
	InstructionUpdate = envelopepkg.InstructionUpdate

	EntityTypeCustomer        = envelopepkg.EntityTypeCustomer
	EntityTypeOrder           = envelopepkg.EntityTypeOrder
	EntityTypeProduct         = envelopepkg.EntityTypeProduct
	EntityTypeSupplier        = envelopepkg.EntityTypeSupplier
	EntityTypeTelephoneNumber = envelopepkg.EntityTypeTelephoneNumber
)

var (
	NewService     = workerpkg.NewService
	ValidateConfig = configpkg.ValidateConfig

	RegisterEntityConsumer = workerpkg.RegisterEntityConsumer
	NewPublishNotifier     = workerpkg.NewPublishNotifier
	PublishEnvelope        = workerpkg.PublishEnvelope

	DefaultMiddlewares      = workerpkg.DefaultMiddlewares
	CorrelationIDMiddleware = workerpkg.CorrelationIDMiddleware
	LogMessagesMiddleware   = workerpkg.LogMessagesMiddleware
	TracerMiddleware        = workerpkg.TracerMiddleware
	MetricsMiddleware       = workerpkg.MetricsMiddleware
	RecovererMiddleware     = workerpkg.RecovererMiddleware

	NewHandlerRegistry = handlerpkg.NewRegistry
	ParseEntityType    = envelopepkg.ParseEntityType
	DecodeEnvelope     = envelopepkg.Decode

	FaultKindOf = faultpkg.KindOf

	NewMetadata = metadatapkg.New

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal

	// Modular transport registry. Import individual transports via:
	// _ "github.com/phoffmann/entitysync/transport/rabbitmq"
	DefaultTransportRegistry = transportpkg.DefaultRegistry
	RegisterTransport        = transportpkg.Register
	BuildTransport           = transportpkg.Build
	GetCapabilities          = transportpkg.GetCapabilities

	ErrServiceRequired    = errspkg.ErrServiceRequired
	ErrRegistryRequired   = errspkg.ErrRegistryRequired
	ErrEntityTypeRequired = errspkg.ErrEntityTypeRequired
	ErrPublisherRequired  = errspkg.ErrPublisherRequired
	ErrTopicRequired      = errspkg.ErrTopicRequired
	ErrEnvelopeRequired   = errspkg.ErrEnvelopeRequired
	ErrConfigRequired     = errspkg.ErrConfigRequired
	ErrLoggerRequired     = errspkg.ErrLoggerRequired
)
