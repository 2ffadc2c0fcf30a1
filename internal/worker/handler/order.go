package handler

import (
	"context"
	"errors"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker/envelope"
	"github.com/phoffmann/entitysync/internal/worker/fault"
	loggingpkg "github.com/phoffmann/entitysync/internal/worker/logging"
	"github.com/phoffmann/entitysync/internal/worker/payload"
)

// OrderHandler syncs order entities. A successful create emits two
// best-effort side effects: an order confirmation addressed to the
// customer's email and a warehouse picking slip. Neither can fail the
// message.
type OrderHandler struct {
	store    OrderStore
	catalog  *ProductCatalog
	notifier Notifier
	logger   loggingpkg.ServiceLogger
}

func NewOrderHandler(store OrderStore, catalog *ProductCatalog, notifier Notifier, logger loggingpkg.ServiceLogger) *OrderHandler {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &OrderHandler{store: store, catalog: catalog, notifier: notifier, logger: logger}
}

func (h *OrderHandler) EntityType() envelope.EntityType {
	return envelope.EntityTypeOrder
}

func (h *OrderHandler) HandleCreate(ctx context.Context, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionCreate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	order, err := h.store.CreateOrder(ctx, h.mapOrder(ctx, &domain.Order{}, p))
	if err != nil {
		return nil, err
	}

	h.emitSideEffects(ctx, order)
	return order, nil
}

func (h *OrderHandler) HandleUpdate(ctx context.Context, id int64, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionUpdate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	order, err := h.store.OrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &fault.NotFoundError{EntityType: string(h.EntityType()), ID: id}
		}
		return nil, err
	}

	return h.store.UpdateOrder(ctx, h.mapOrder(ctx, order, p))
}

func (h *OrderHandler) parse(raw []byte, op envelope.Instruction) (payload.Order, []string) {
	p, errs := payload.DecodeOrder(raw)
	if errs == nil {
		errs = p.Validate(payload.Context{Instruction: op})
	}
	if len(errs) > 0 {
		return payload.Order{}, errs
	}
	return p, nil
}

// mapOrder copies the validated payload onto the order. Item product names
// are looked up in the catalog as best-effort enrichment for callers and
// events; an unknown productId is stored as-is, not rejected.
func (h *OrderHandler) mapOrder(ctx context.Context, order *domain.Order, p payload.Order) *domain.Order {
	status, _ := domain.ParseOrderStatus(*p.OrderStatus)

	order.CustomerID = *p.CustomerID
	order.SupplierID = *p.SupplierID
	order.OrderDate = *p.OrderDate
	order.CustomerEmail = *p.CustomerEmail
	order.Status = status
	order.BillingAddress = mapAddress(p.BillingAddress)
	if p.DeliveryAddress != nil {
		order.DeliveryAddress = mapAddress(p.DeliveryAddress)
	}
	if p.OrderItems != nil {
		items := make([]domain.OrderItem, len(p.OrderItems))
		for i, it := range p.OrderItems {
			items[i] = domain.OrderItem{
				ProductID: *it.ProductID,
				Quantity:  *it.Quantity,
				UnitPrice: *it.UnitPrice,
			}
			if h.catalog != nil {
				if product, ok := h.catalog.Lookup(ctx, *it.ProductID); ok {
					items[i].ProductName = product.Name
				}
			}
		}
		order.Items = items
	}
	return order
}

func (h *OrderHandler) emitSideEffects(ctx context.Context, order *domain.Order) {
	if err := h.notifier.OrderConfirmation(ctx, order.CustomerEmail, order.ID); err != nil && h.logger != nil {
		h.logger.Error("Failed to emit order confirmation", err, loggingpkg.LogFields{"order_id": order.ID})
	}
	if err := h.notifier.PickingSlip(ctx, order.ID); err != nil && h.logger != nil {
		h.logger.Error("Failed to emit picking slip", err, loggingpkg.LogFields{"order_id": order.ID})
	}
}

func mapAddress(a *payload.Address) domain.Address {
	addr := domain.Address{Street: *a.Street}
	if a.City != nil {
		addr.City = *a.City
	}
	if a.County != nil {
		addr.County = *a.County
	}
	if a.PostalCode != nil {
		addr.PostalCode = *a.PostalCode
	}
	if a.Country != nil {
		addr.Country = *a.Country
	}
	return addr
}
