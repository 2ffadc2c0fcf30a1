// Package envelope implements the wire codec for entity sync messages.
// An envelope wraps an instruction, an entity type, an optional id, and an
// opaque payload; payload contents are left to the entity validators.
package envelope

import (
	"encoding/json"
	"strings"

	"github.com/phoffmann/entitysync/internal/worker/fault"
	"github.com/phoffmann/entitysync/internal/worker/jsoncodec"
)

// Instruction tells a handler whether to create a new entity or mutate an
// existing one.
type Instruction string

const (
	InstructionCreate Instruction = "create"
	InstructionUpdate Instruction = "update"
)

// EntityType names one of the entity kinds the worker can sync. Matching is
// case-insensitive on the wire.
type EntityType string

const (
	EntityTypeCustomer        EntityType = "Customer"
	EntityTypeOrder           EntityType = "Order"
	EntityTypeProduct         EntityType = "Product"
	EntityTypeSupplier        EntityType = "Supplier"
	EntityTypeTelephoneNumber EntityType = "TelephoneNumber"
)

// EntityTypes lists every entity type known to the codec.
var EntityTypes = []EntityType{
	EntityTypeCustomer,
	EntityTypeOrder,
	EntityTypeProduct,
	EntityTypeSupplier,
	EntityTypeTelephoneNumber,
}

// ParseEntityType matches raw against the known entity types, ignoring
// case. It reports false for unknown names; the dispatch layer decides what
// to do with those, not the codec.
func ParseEntityType(raw string) (EntityType, bool) {
	for _, et := range EntityTypes {
		if strings.EqualFold(string(et), raw) {
			return et, true
		}
	}
	return "", false
}

// Queue returns the conventional queue name for the entity type under the
// given prefix, e.g. "entities.customer".
func (et EntityType) Queue(prefix string) string {
	return prefix + "." + strings.ToLower(string(et))
}

// Envelope is the outer wire message. Payload stays raw; decoding it into a
// typed structure is the per-entity validator's job.
type Envelope struct {
	Instruction Instruction     `json:"instruction"`
	EntityType  string          `json:"entityType"`
	ID          *int64          `json:"id,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// Decode parses raw bytes into an Envelope. It fails with a
// *fault.MalformedEnvelopeError when the top-level JSON is not an object,
// when instruction, entityType, or payload is missing, when the instruction
// is not a known verb, or when an update carries no id. An unknown entity
// type is not malformed; routing handles that case.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := jsoncodec.Unmarshal(data, &env); err != nil {
		return nil, &fault.MalformedEnvelopeError{Reason: "not a JSON object", Err: err}
	}

	if env.Instruction == "" {
		return nil, &fault.MalformedEnvelopeError{Reason: "missing instruction"}
	}
	switch Instruction(strings.ToLower(string(env.Instruction))) {
	case InstructionCreate:
		env.Instruction = InstructionCreate
	case InstructionUpdate:
		env.Instruction = InstructionUpdate
	default:
		return nil, &fault.MalformedEnvelopeError{Reason: "unknown instruction " + string(env.Instruction)}
	}

	if env.EntityType == "" {
		return nil, &fault.MalformedEnvelopeError{Reason: "missing entityType"}
	}
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return nil, &fault.MalformedEnvelopeError{Reason: "missing payload"}
	}
	if env.Instruction == InstructionUpdate && env.ID == nil {
		return nil, &fault.MalformedEnvelopeError{Reason: "update without id"}
	}

	return &env, nil
}

// Encode serialises the envelope back to wire bytes. It is the exact
// inverse of Decode for well-formed envelopes, supporting re-publication.
func (e *Envelope) Encode() ([]byte, error) {
	return jsoncodec.Marshal(e)
}
