// Package validate checks, in development builds only, that an object's keys
// match a declared shape. It catches objects of one shape handed to code that
// expects the other. A disabled Validator does nothing.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/schema"
)

// ValidationError lists every required field that was absent or null.
type ValidationError struct {
	TypeName string
	Missing  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: missing required fields: %s", e.TypeName, strings.Join(e.Missing, ", "))
}

type Validator struct {
	enabled bool
	log     *zap.Logger
}

// New returns a validator. Pass enabled=false outside development.
func New(enabled bool, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{enabled: enabled, log: log.Named("validate")}
}

func (v *Validator) Enabled() bool { return v != nil && v.enabled }

// Fields checks data against d. Missing required fields yield a
// *ValidationError; undeclared fields are logged as a warning only.
// data may be raw JSON or any value that marshals to a JSON object.
func (v *Validator) Fields(data any, d schema.Descriptor, typeName string) error {
	if !v.Enabled() {
		return nil
	}
	raw, err := asJSON(data)
	if err != nil {
		v.log.Warn("cannot inspect value", zap.String("type", typeName), zap.Error(err))
		return nil
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return &ValidationError{TypeName: typeName, Missing: d.Required}
	}

	var missing []string
	for _, field := range d.Required {
		if r := obj.Get(field); !r.Exists() || r.Type == gjson.Null {
			missing = append(missing, field)
		}
	}
	var unexpected []string
	obj.ForEach(func(key, _ gjson.Result) bool {
		if !d.Allowed(key.String()) {
			unexpected = append(unexpected, key.String())
		}
		return true
	})
	if len(unexpected) > 0 {
		v.log.Warn("unexpected fields", zap.String("type", typeName), zap.Strings("fields", unexpected))
	}
	if len(missing) > 0 {
		return &ValidationError{TypeName: typeName, Missing: missing}
	}
	return nil
}

// Check runs Fields and logs a failure instead of returning it.
func (v *Validator) Check(data any, d schema.Descriptor, typeName string) {
	if err := v.Fields(data, d, typeName); err != nil {
		v.log.Warn("structural validation failed", zap.Error(err))
	}
}

// Display checks data against the display shape of kind k.
func (v *Validator) Display(k model.Kind, data any) {
	if !v.Enabled() || !k.Valid() {
		return
	}
	v.Check(data, schema.Display(k), schema.TypeName(k, true))
}

// DisplayPartial checks an update payload: nothing is required, but
// undeclared keys are still reported.
func (v *Validator) DisplayPartial(k model.Kind, data any) {
	if !v.Enabled() || !k.Valid() {
		return
	}
	v.Check(data, schema.Display(k).Partial(), schema.TypeName(k, true))
}

// Persisted checks data against the persisted shape of kind k.
func (v *Validator) Persisted(k model.Kind, data any) {
	if !v.Enabled() || !k.Valid() {
		return
	}
	v.Check(data, schema.Persisted(k), schema.TypeName(k, false))
}

func asJSON(data any) ([]byte, error) {
	switch d := data.(type) {
	case json.RawMessage:
		return d, nil
	case []byte:
		return d, nil
	}
	return json.Marshal(data)
}
