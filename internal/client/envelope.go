package client

import (
	"bytes"
	"encoding/json"

	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/pkg/errors"
)

// Envelope is a decoded API response. For collections Data carries the HAL
// keys `_embedded.records` and `_links`; for singletons it is the record.
type Envelope struct {
	Data map[string]any
}

// DecodeEnvelope decodes a JSON object body. Numbers are kept as json.Number
// so large integers survive unchanged.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, errors.WithMessagef(fault.ErrMalformedRecord, "failed to decode response body: %v", err)
	}
	if data == nil {
		return nil, errors.WithMessage(fault.ErrMalformedRecord, "response body is not a JSON object")
	}
	return &Envelope{Data: data}, nil
}

// Records returns the embedded records of a collection. The second result is
// false when the envelope carries no `_embedded.records` key at all.
func (e *Envelope) Records() ([]map[string]any, bool, error) {
	embedded, ok := e.Data["_embedded"].(map[string]any)
	if !ok {
		return nil, false, nil
	}
	raw, ok := embedded["records"]
	if !ok || raw == nil {
		return nil, false, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, true, errors.WithMessage(fault.ErrMalformedRecord, "field '_embedded.records' is not a list")
	}

	records := make([]map[string]any, 0, len(list))
	for i, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, true, errors.WithMessagef(fault.ErrMalformedRecord, "record %d is not an object", i)
		}
		records = append(records, record)
	}
	return records, true, nil
}

// Link returns the href of the named link relation, such as "next" or "prev".
func (e *Envelope) Link(rel string) (string, bool) {
	links, ok := e.Data["_links"].(map[string]any)
	if !ok {
		return "", false
	}
	link, ok := links[rel].(map[string]any)
	if !ok {
		return "", false
	}
	href, ok := link["href"].(string)
	if !ok || href == "" {
		return "", false
	}
	return href, true
}
