// Package schema declares the transfer objects that cross the module
// boundary: a Create, Update and Read shape per entity.
//
// Create payloads carry every required field and validate through struct
// tags. Update payloads wrap each field in Optional so an absent field means
// "leave unchanged" rather than "set to null". Read shapes are built from
// persisted entities field by field.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Wallian169/p2p-tg-bot/internal/validation"
)

// ErrRelationNotLoaded is returned when a Read shape needs a related entity
// that was not loaded with its parent.
var ErrRelationNotLoaded = errors.New("schema: relation not loaded")

// Decode parses a JSON payload into T and validates it. Unknown fields are
// rejected. A payload that fails validation yields an *errs.HTTPError with
// one entry per failing field.
func Decode[T validation.Validatable](data []byte) (T, error) {
	var payload T

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, validation.Validate(invalidJSON{err})
	}

	if err := validation.Validate(payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// invalidJSON reports a payload that could not be decoded at all.
type invalidJSON struct {
	err error
}

func (p invalidJSON) Validate() error {
	return fmt.Errorf("invalid JSON: %w", p.err)
}
