package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker/envelope"
	"github.com/phoffmann/entitysync/internal/worker/fault"
	"github.com/phoffmann/entitysync/internal/worker/payload"
)

// ProductHandler syncs product entities.
type ProductHandler struct {
	store ProductStore
}

func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

func (h *ProductHandler) EntityType() envelope.EntityType {
	return envelope.EntityTypeProduct
}

func (h *ProductHandler) HandleCreate(ctx context.Context, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionCreate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	// The validator already proved the code parses.
	code := uuid.MustParse(*p.ProductCode)
	return h.store.CreateProduct(ctx, &domain.Product{Code: code, Name: *p.Name})
}

func (h *ProductHandler) HandleUpdate(ctx context.Context, id int64, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionUpdate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	product, err := h.store.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &fault.NotFoundError{EntityType: string(h.EntityType()), ID: id}
		}
		return nil, err
	}

	product.Code = uuid.MustParse(*p.ProductCode)
	product.Name = *p.Name
	return h.store.UpdateProduct(ctx, product)
}

func (h *ProductHandler) parse(raw []byte, op envelope.Instruction) (payload.Product, []string) {
	p, errs := payload.DecodeProduct(raw)
	if errs == nil {
		errs = p.Validate(payload.Context{Instruction: op})
	}
	if len(errs) > 0 {
		return payload.Product{}, errs
	}
	return p, nil
}
