package handler

import (
	"context"
	"errors"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker/envelope"
	"github.com/phoffmann/entitysync/internal/worker/fault"
	"github.com/phoffmann/entitysync/internal/worker/payload"
)

// TelephoneHandler syncs telephone numbers that arrive as standalone
// entities rather than inside a customer payload.
type TelephoneHandler struct {
	store TelephoneStore
}

func NewTelephoneHandler(store TelephoneStore) *TelephoneHandler {
	return &TelephoneHandler{store: store}
}

func (h *TelephoneHandler) EntityType() envelope.EntityType {
	return envelope.EntityTypeTelephoneNumber
}

func (h *TelephoneHandler) HandleCreate(ctx context.Context, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionCreate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	return h.store.CreateTelephone(ctx, &domain.TelephoneNumber{Type: *p.Type, Number: *p.Number})
}

func (h *TelephoneHandler) HandleUpdate(ctx context.Context, id int64, raw []byte) (any, error) {
	p, errs := h.parse(raw, envelope.InstructionUpdate)
	if errs != nil {
		return nil, &fault.ValidationError{EntityType: string(h.EntityType()), Errors: errs}
	}

	phone, err := h.store.TelephoneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &fault.NotFoundError{EntityType: string(h.EntityType()), ID: id}
		}
		return nil, err
	}

	phone.Type = *p.Type
	phone.Number = *p.Number
	return h.store.UpdateTelephone(ctx, phone)
}

func (h *TelephoneHandler) parse(raw []byte, op envelope.Instruction) (payload.Telephone, []string) {
	p, errs := payload.DecodeTelephone(raw)
	if errs == nil {
		errs = p.Validate(payload.Context{Instruction: op})
	}
	if len(errs) > 0 {
		return payload.Telephone{}, errs
	}
	return p, nil
}
