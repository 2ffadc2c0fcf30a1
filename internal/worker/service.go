// Package worker wires a Watermill router, transport, and the per-entity
// consumer loops that drive entity synchronisation. A Service owns one
// subscriber and one publisher pair built from the configured transport;
// consumers are registered per entity type and share the router's
// middleware chain.
package worker

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/plugin"

	configpkg "github.com/phoffmann/entitysync/internal/worker/config"
	errspkg "github.com/phoffmann/entitysync/internal/worker/errors"
	loggingpkg "github.com/phoffmann/entitysync/internal/worker/logging"
	transportpkg "github.com/phoffmann/entitysync/transport"
)

var routerRun = func(router *message.Router, ctx context.Context) error {
	return router.Run(ctx)
}

// ServiceDependencies holds the optional collaborators that the Service can
// use. Leave fields nil to use the defaults.
type ServiceDependencies struct {
	// Sink additionally persists dead-lettered messages. The dead-letter
	// topic is always published to; the sink is a second record.
	Sink DeadLetterSink

	Middlewares               []MiddlewareRegistration // Appended after the default middleware chain.
	DisableDefaultMiddlewares bool                     // Skips registering the default middleware chain when true.

	// TransportFactory overrides the registry-based transport lookup.
	TransportFactory transportpkg.Builder
}

// Service wires a Watermill router, publisher, subscriber, and middleware
// chain. Register entity consumers on the returned Service before calling
// Start.
type Service struct {
	Conf   *configpkg.Config
	Logger loggingpkg.ServiceLogger

	publisher  message.Publisher
	subscriber message.Subscriber
	router     *message.Router

	sink DeadLetterSink

	consumers   []*ConsumerInfo
	consumersMu sync.RWMutex

	httpServers   map[int]*http.ServeMux
	httpServersMu sync.Mutex
}

// NewService constructs a Service for the supplied configuration.
func NewService(conf *configpkg.Config, log loggingpkg.ServiceLogger, ctx context.Context, deps ServiceDependencies) *Service {
	if conf == nil {
		panic(errspkg.ErrConfigRequired)
	}
	if log == nil {
		panic(errspkg.ErrLoggerRequired)
	}

	wmLogger := loggingpkg.NewWatermillAdapter(log)
	log.Info("Creating entity sync service",
		loggingpkg.LogFields{
			"pubsub_system": conf.PubSubSystem,
			"config":        conf,
		})

	s := &Service{
		Conf:   conf,
		Logger: log,
		sink:   deps.Sink,
	}

	build := deps.TransportFactory
	if build == nil {
		build = transportpkg.Build
	}
	transport, err := build(ctx, conf, wmLogger)
	if err != nil {
		panic(err)
	}

	s.publisher = transport.Publisher
	s.subscriber = transport.Subscriber

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		panic(err)
	}

	s.router = router
	s.router.AddPlugin(plugin.SignalsHandler)

	s.registerConfiguredMiddlewares(deps)

	return s
}

// Start runs the underlying Watermill router until the provided context is
// cancelled. In-flight messages finish processing before the router stops.
func (s *Service) Start(ctx context.Context) error {
	s.startOpsServer()
	s.startHTTPServers()
	return routerRun(s.router, ctx)
}

// Running returns a channel that is closed once the router is running and
// all consumers are subscribed.
func (s *Service) Running() chan struct{} {
	return s.router.Running()
}

// Publisher exposes the transport publisher so callers can emit follow-up
// events through the same connection.
func (s *Service) Publisher() message.Publisher {
	return s.publisher
}

func (s *Service) registerConfiguredMiddlewares(deps ServiceDependencies) {
	var defaults []MiddlewareRegistration
	if !deps.DisableDefaultMiddlewares {
		defaults = DefaultMiddlewares()
	}
	registrations := make([]MiddlewareRegistration, 0, len(defaults)+len(deps.Middlewares))
	registrations = append(registrations, defaults...)
	registrations = append(registrations, deps.Middlewares...)

	for _, reg := range registrations {
		if err := s.RegisterMiddleware(reg); err != nil {
			name := reg.Name
			if name == "" {
				name = "anonymous_middleware"
			}
			panic(fmt.Sprintf("failed to register middleware %s: %v", name, err))
		}
	}
}

func (s *Service) RegisterHTTPHandler(port int, pattern string, handler http.Handler) {
	s.httpServersMu.Lock()
	defer s.httpServersMu.Unlock()

	if s.httpServers == nil {
		s.httpServers = make(map[int]*http.ServeMux)
	}

	mux, ok := s.httpServers[port]
	if !ok {
		mux = http.NewServeMux()
		s.httpServers[port] = mux
	}

	mux.Handle(pattern, handler)
}

func (s *Service) startHTTPServers() {
	s.httpServersMu.Lock()
	defer s.httpServersMu.Unlock()

	for port, mux := range s.httpServers {
		addr := fmt.Sprintf(":%d", port)
		s.Logger.Info("Starting HTTP server", loggingpkg.LogFields{"address": addr})
		go func(addr string, handler http.Handler) {
			if err := http.ListenAndServe(addr, handler); err != nil {
				s.Logger.Error("Failed to start HTTP server", err, loggingpkg.LogFields{"address": addr})
			}
		}(addr, mux)
	}
}
