// Package fault holds the error kinds returned by the explorer client.
//
// Every layer wraps one of these sentinels so that callers can tell the kind
// apart with errors.Is, whatever context was attached on the way up.
package fault

import "errors"

var (
	// ErrNetwork is returned when the API could not be reached or timed out.
	ErrNetwork = errors.New("network error")

	// ErrNotFound is returned when a singleton lookup has no match.
	ErrNotFound = errors.New("not found")

	// ErrNoSuchPage is returned when a cursor has no link in the requested direction.
	ErrNoSuchPage = errors.New("no such page")

	// ErrMalformedRecord is returned when a record is missing a required field.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrServer is returned for non-2xx responses other than not found.
	ErrServer = errors.New("server error")

	// ErrConfig is returned when a required configuration value is unset or invalid.
	ErrConfig = errors.New("configuration error")
)

var kinds = []struct {
	err   error
	label string
}{
	{ErrNetwork, "network"},
	{ErrNotFound, "not_found"},
	{ErrNoSuchPage, "no_such_page"},
	{ErrMalformedRecord, "malformed_record"},
	{ErrServer, "server"},
	{ErrConfig, "config"},
}

// Kind returns a short label for the kind of err, suitable for log attributes
// and metric labels. It returns "ok" for a nil error and "unknown" when err
// wraps none of the sentinels.
func Kind(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "unknown"
}
