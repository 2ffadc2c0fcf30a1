// Package handler contains the per-entity create/update logic and the
// dispatch registry that routes a decoded envelope to it. Handlers validate
// the payload, map it onto a domain entity, and call the persistence
// gateway; they return typed faults and never decide broker actions.
package handler

import (
	"context"
	"strings"
	"sync"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker/envelope"
)

// Handler processes the payload of one entity type. Both operations return
// the persisted entity on success. Failures are *fault.ValidationError,
// *fault.NotFoundError, or the gateway's own error (treated as transient).
type Handler interface {
	EntityType() envelope.EntityType
	HandleCreate(ctx context.Context, payload []byte) (any, error)
	HandleUpdate(ctx context.Context, id int64, payload []byte) (any, error)
}

// Registry maps entity types to handlers. Lookup is case-insensitive to
// match the wire contract.
type Registry struct {
	mu       sync.RWMutex
	handlers map[envelope.EntityType]Handler
}

func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{handlers: make(map[envelope.EntityType]Handler, len(handlers))}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.EntityType()] = h
}

// Route resolves the handler for a raw entity type name. It reports false
// for unknown names; the caller decides what an unroutable message means.
func (r *Registry) Route(rawEntityType string) (Handler, bool) {
	et, ok := envelope.ParseEntityType(rawEntityType)
	if !ok {
		// Registered handlers may cover types the codec does not know.
		et = envelope.EntityType(rawEntityType)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.handlers[et]; ok {
		return h, true
	}
	for registered, h := range r.handlers {
		if strings.EqualFold(string(registered), rawEntityType) {
			return h, true
		}
	}
	return nil, false
}

// EntityTypes returns the entity types with a registered handler.
func (r *Registry) EntityTypes() []envelope.EntityType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]envelope.EntityType, 0, len(r.handlers))
	for et := range r.handlers {
		types = append(types, et)
	}
	return types
}

// Persistence gateways, one per entity type. They are owned by the
// surrounding application; implementations report a missing id with
// domain.ErrNotFound and any other failure as-is.

type CustomerStore interface {
	CustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	// UpdateCustomer treats a nil Phones slice as "keep the stored phone
	// set"; a non-nil slice, including an empty one, replaces it.
	UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

type TelephoneStore interface {
	TelephoneByID(ctx context.Context, id int64) (*domain.TelephoneNumber, error)
	CreateTelephone(ctx context.Context, t *domain.TelephoneNumber) (*domain.TelephoneNumber, error)
	UpdateTelephone(ctx context.Context, t *domain.TelephoneNumber) (*domain.TelephoneNumber, error)
}

type ProductStore interface {
	ProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type SupplierStore interface {
	SupplierByID(ctx context.Context, id int64) (*domain.Supplier, error)
	CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
}

type OrderStore interface {
	OrderByID(ctx context.Context, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error)
	UpdateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error)
}

// Notifier receives the fire-and-forget side effects of a successful order
// creation. Implementations must not block the handler on delivery; errors
// are logged by the caller and never fail the message.
type Notifier interface {
	OrderConfirmation(ctx context.Context, email string, orderID int64) error
	PickingSlip(ctx context.Context, orderID int64) error
}

// NoopNotifier discards all side-effect notifications.
type NoopNotifier struct{}

func (NoopNotifier) OrderConfirmation(context.Context, string, int64) error { return nil }
func (NoopNotifier) PickingSlip(context.Context, int64) error               { return nil }
