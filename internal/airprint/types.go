package airprint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Device mirrors a printer entry returned by /api/printers.
type Device struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Status RawStatus `json:"status"`
}

// Online reports whether the device's status normalizes to "online".
func (d Device) Online() bool {
	return d.Status.Normalized() == StatusOnline
}

// Well-known normalized status values.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusBusy    = "busy"
	StatusError   = "error"
)

// RawStatus is the daemon's status value as received. The daemon encodes
// its status enum either as a plain string ("Online") or, for variants that
// carry detail, as a single-key object ({"Error": "paper jam"}).
type RawStatus struct {
	Value  string
	Detail string
}

// Normalized lower-cases and trims the status value.
func (s RawStatus) Normalized() string {
	return strings.ToLower(strings.TrimSpace(s.Value))
}

func (s RawStatus) String() string {
	if s.Detail != "" {
		return s.Value + ": " + s.Detail
	}
	return s.Value
}

// UnmarshalJSON accepts "Online" or {"Error": "detail"}.
func (s *RawStatus) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = RawStatus{Value: plain}
		return nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("decode status: want one variant, got %d", len(tagged))
	}
	for variant, raw := range tagged {
		var detail string
		if err := json.Unmarshal(raw, &detail); err != nil {
			detail = strings.TrimSpace(string(raw))
		}
		*s = RawStatus{Value: variant, Detail: detail}
	}
	return nil
}

// MarshalJSON writes the plain or tagged form matching what was decoded.
func (s RawStatus) MarshalJSON() ([]byte, error) {
	if s.Detail == "" {
		return json.Marshal(s.Value)
	}
	return json.Marshal(map[string]string{s.Value: s.Detail})
}

// ShareResponse mirrors the body of POST /api/printers/{id}/share.
type ShareResponse struct {
	Message string `json:"message"`
}

// LanguageRequest is the body of PUT /api/language.
type LanguageRequest struct {
	Locale string `json:"locale"`
}

// ErrorResponse is the JSON error body the daemon returns on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIError reports a non-2xx response. Message holds the daemon's own text.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}
