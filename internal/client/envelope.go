package client

import (
	"encoding/json"
	"time"
)

// envelope is the one canonical response shape the backend wraps every
// payload in. Anything that does not decode into it, or that reports
// success=false on a 2xx, is treated as a server error; no alternate
// envelope shapes are sniffed.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// page is the canonical list payload carried inside an envelope's data
// field.
type page struct {
	Items json.RawMessage `json:"items"`
	Total int             `json:"total"`
}

// detail returns the most useful human-readable message the server
// provided, if any.
func (e envelope) detail() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
