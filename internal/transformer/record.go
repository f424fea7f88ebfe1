package transformer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/manifest-network/sebakscan/internal/models"
	"github.com/pkg/errors"
)

// record reads typed fields out of a decoded JSON object. The first failure
// is kept and every later read becomes a no-op, so a transform function can
// read all its fields and check err once.
type record struct {
	raw map[string]any
	err error
}

func newRecord(raw map[string]any) *record {
	r := &record{raw: raw}
	if raw == nil {
		r.err = errors.WithMessage(fault.ErrMalformedRecord, "record is empty")
	}
	return r
}

func (r *record) fail(format string, args ...any) {
	if r.err == nil {
		r.err = errors.WithMessagef(fault.ErrMalformedRecord, format, args...)
	}
}

// getNestedField resolves a dotted path such as "block.height".
func getNestedField(raw map[string]any, fieldPath string) (any, bool, error) {
	parts := strings.Split(fieldPath, ".")
	current := raw
	for i, part := range parts {
		value, ok := current[part]
		if !ok || value == nil {
			return nil, false, nil
		}
		if i == len(parts)-1 {
			return value, true, nil
		}
		next, ok := value.(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("field '%s' is not an object", strings.Join(parts[:i+1], "."))
		}
		current = next
	}
	return nil, false, nil
}

func (r *record) lookup(path string, required bool) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	value, ok, err := getNestedField(r.raw, path)
	if err != nil {
		r.fail("%v", err)
		return nil, false
	}
	if !ok {
		if required {
			r.fail("field '%s' not found", path)
		}
		return nil, false
	}
	return value, true
}

func (r *record) str(path string) string {
	return r.stringField(path, true)
}

func (r *record) optStr(path string) string {
	return r.stringField(path, false)
}

func (r *record) stringField(path string, required bool) string {
	value, ok := r.lookup(path, required)
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		r.fail("field '%s' is not a string", path)
		return ""
	}
	if required && s == "" {
		r.fail("field '%s' is empty", path)
	}
	return s
}

func (r *record) uint(path string) uint64 {
	return r.uintField(path, true)
}

func (r *record) optUint(path string) uint64 {
	return r.uintField(path, false)
}

func (r *record) uintField(path string, required bool) uint64 {
	value, ok := r.lookup(path, required)
	if !ok {
		return 0
	}
	var text string
	switch v := value.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		r.fail("field '%s' is not a number", path)
		return 0
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		r.fail("field '%s' is not an unsigned integer: %q", path, text)
		return 0
	}
	return n
}

func (r *record) amount(path string) models.Amount {
	return models.Amount(r.uintField(path, true))
}

func (r *record) optAmount(path string) models.Amount {
	return models.Amount(r.uintField(path, false))
}

func (r *record) time(path string) time.Time {
	return r.timeField(path, true)
}

func (r *record) optTime(path string) time.Time {
	return r.timeField(path, false)
}

func (r *record) timeField(path string, required bool) time.Time {
	s := r.stringField(path, required)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		r.fail("field '%s' is not an RFC 3339 timestamp: %q", path, s)
		return time.Time{}
	}
	return t
}

func (r *record) optStrings(path string) []string {
	value, ok := r.lookup(path, false)
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		r.fail("field '%s' is not a list", path)
		return nil
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			r.fail("field '%s[%d]' is not a string", path, i)
			return nil
		}
		out = append(out, s)
	}
	return out
}
