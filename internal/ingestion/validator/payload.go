package validator

import (
	"encoding/json"
	"fmt"
	"sync"

	"courtpub/internal/ingestion/models"
	"courtpub/pkg/domain"
)

// PayloadValidator checks the structured payload of one list type.
type PayloadValidator interface {
	ValidatePayload(payload json.RawMessage) []models.FieldError
}

// PayloadValidatorFunc adapts a function to PayloadValidator.
type PayloadValidatorFunc func(payload json.RawMessage) []models.FieldError

func (f PayloadValidatorFunc) ValidatePayload(payload json.RawMessage) []models.FieldError {
	return f(payload)
}

// Registry maps list types to their payload validators. It is populated at
// startup and read on every ingestion.
type Registry struct {
	mu         sync.RWMutex
	validators map[domain.ListTypeID]PayloadValidator
}

func NewRegistry() *Registry {
	return &Registry{validators: make(map[domain.ListTypeID]PayloadValidator)}
}

// Register replaces any validator already registered for id.
func (r *Registry) Register(id domain.ListTypeID, v PayloadValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[id] = v
}

func (r *Registry) Lookup(id domain.ListTypeID) (PayloadValidator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[id]
	return v, ok
}

// RequiredKeys requires the payload to be a JSON object carrying every key.
func RequiredKeys(keys ...string) PayloadValidator {
	return PayloadValidatorFunc(func(payload json.RawMessage) []models.FieldError {
		if len(payload) == 0 {
			return []models.FieldError{{Field: "payload", Message: "is required"}}
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(payload, &obj); err != nil {
			return []models.FieldError{{Field: "payload", Message: "must be a JSON object"}}
		}
		var errs []models.FieldError
		for _, k := range keys {
			if _, ok := obj[k]; !ok {
				errs = append(errs, models.FieldError{Field: fmt.Sprintf("payload[%s]", k), Message: "is required"})
			}
		}
		return errs
	})
}
