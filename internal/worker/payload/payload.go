// Package payload defines one typed payload per entity and its two-phase
// validator. Decoding enforces field shapes in a single fallible parse;
// validation then checks presence of required fields first and value rules
// second, so a payload missing required fields reports only the missing
// fields and never cascades into value errors.
//
// Every error string names the entity, the failing field path, and the
// violated rule in plain English, for operator triage.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker/envelope"
)

// Context carries the circumstances of a validation run. Create and update
// currently share the same field rules; the instruction is kept available
// for rules that may diverge.
type Context struct {
	Instruction envelope.Instruction
}

var atSign = regexp.MustCompile("@")

var (
	ruleNotEmpty   = validation.Required.Error("cannot be empty")
	ruleContainsAt = validation.Match(atSign).Error("must contain '@'")

	ruleGreaterThanZero = validation.By(func(v any) error {
		if n, ok := v.(int64); ok && n > 0 {
			return nil
		}
		return errors.New("must be greater than 0")
	})

	ruleNotNegative = validation.By(func(v any) error {
		if f, ok := v.(float64); ok && f >= 0 {
			return nil
		}
		return errors.New("must be zero or greater")
	})

	ruleUUID = validation.By(func(v any) error {
		s, _ := v.(string)
		if _, err := uuid.Parse(s); err != nil {
			return errors.New("must be a valid UUID")
		}
		return nil
	})

	ruleOrderStatus = validation.By(func(v any) error {
		s, _ := v.(string)
		if _, ok := domain.ParseOrderStatus(s); !ok {
			return errors.New("must be a known order status")
		}
		return nil
	})
)

func maxLen(n int) validation.Rule {
	return validation.RuneLength(1, n).Error(fmt.Sprintf("must be at most %d characters", n))
}

// fieldErr formats a single validation error as "<Entity> '<field>' <rule>".
func fieldErr(entity, field, msg string) string {
	return fmt.Sprintf("%s '%s' %s", entity, field, msg)
}

func requiredErr(entity, field string) string {
	return fieldErr(entity, field, "is required")
}

// checkField runs value-phase rules against a present field and appends the
// first violated rule, if any.
func checkField(errs []string, entity, field string, value any, rules ...validation.Rule) []string {
	if err := validation.Validate(value, rules...); err != nil {
		errs = append(errs, fieldErr(entity, field, err.Error()))
	}
	return errs
}

// decodeInto parses the raw payload into dst. A structurally wrong payload
// is reported as validation errors, never a panic: a mistyped field names
// the field, anything else collapses into a single shape error. Decoding
// goes through encoding/json here because only its UnmarshalTypeError
// carries the failing field name.
func decodeInto(entity string, raw []byte, dst any) []string {
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return []string{fieldErr(entity, typeErr.Field, "is not of the expected type")}
		}
		return []string{entity + " payload is not a valid JSON object"}
	}
	return nil
}
