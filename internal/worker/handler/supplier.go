package handler

import (
	"context"
	"errors"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker/envelope"
	"github.com/phoffmann/entitysync/internal/worker/fault"
	"github.com/phoffmann/entitysync/internal/worker/payload"
)

// SupplierHandler syncs supplier entities.
type SupplierHandler struct {
	store SupplierStore
}

func NewSupplierHandler(store SupplierStore) *SupplierHandler {
	return &SupplierHandler{store: store}
}

func (h *SupplierHandler) EntityType() envelope.EntityType {
	return envelope.EntityTypeSupplier
}

func (h *SupplierHandler) HandleCreate(ctx context.Context, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionCreate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	return h.store.CreateSupplier(ctx, &domain.Supplier{Name: *p.Name})
}

func (h *SupplierHandler) HandleUpdate(ctx context.Context, id int64, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionUpdate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	supplier, err := h.store.SupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &fault.NotFoundError{EntityType: string(h.EntityType()), ID: id}
		}
		return nil, err
	}

	supplier.Name = *p.Name
	return h.store.UpdateSupplier(ctx, supplier)
}

func (h *SupplierHandler) parse(raw []byte, op envelope.Instruction) (payload.Supplier, []string) {
	p, errs := payload.DecodeSupplier(raw)
	if errs == nil {
		errs = p.Validate(payload.Context{Instruction: op})
	}
	if len(errs) > 0 {
		return payload.Supplier{}, errs
	}
	return p, nil
}
