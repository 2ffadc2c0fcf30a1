package handler

import (
	"context"
	"errors"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker/envelope"
	"github.com/phoffmann/entitysync/internal/worker/fault"
	"github.com/phoffmann/entitysync/internal/worker/payload"
)

// CustomerHandler syncs customer entities. A customer update carrying a
// phoneNumbers array replaces the customer's full set of numbers; the
// replace is destructive, not a merge.
type CustomerHandler struct {
	store CustomerStore
}

func NewCustomerHandler(store CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

func (h *CustomerHandler) EntityType() envelope.EntityType {
	return envelope.EntityTypeCustomer
}

func (h *CustomerHandler) HandleCreate(ctx context.Context, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionCreate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	customer := &domain.Customer{
		Name:   *p.Name,
		Email:  *p.Email,
		Phones: mapPhones(p.PhoneNumbers),
	}
	return h.store.CreateCustomer(ctx, customer)
}

func (h *CustomerHandler) HandleUpdate(ctx context.Context, id int64, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionUpdate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	customer, err := h.store.CustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &fault.NotFoundError{EntityType: string(h.EntityType()), ID: id}
		}
		return nil, err
	}

	customer.Name = *p.Name
	customer.Email = *p.Email
	if p.PhoneNumbers != nil {
		customer.Phones = mapPhones(p.PhoneNumbers)
	} else {
		// Nil tells the gateway to leave the stored phone set untouched.
		customer.Phones = nil
	}
	return h.store.UpdateCustomer(ctx, customer)
}

func (h *CustomerHandler) parse(raw []byte, op envelope.Instruction) (payload.Customer, []string) {
	p, errs := payload.DecodeCustomer(raw)
	if errs == nil {
		errs = p.Validate(payload.Context{Instruction: op})
	}
	if len(errs) > 0 {
		return payload.Customer{}, errs
	}
	return p, nil
}

func mapPhones(phones []payload.Telephone) []domain.TelephoneNumber {
	if phones == nil {
		return nil
	}
	mapped := make([]domain.TelephoneNumber, len(phones))
	for i, p := range phones {
		mapped[i] = domain.TelephoneNumber{Type: *p.Type, Number: *p.Number}
	}
	return mapped
}
