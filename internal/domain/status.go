package domain

import (
	"encoding/json"
	"strings"

	customError "github.com/fabianodasilvalira/tatystore-billing/pkg/errors"
)

// Status is the closed set of installment states owned by the server.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusCanceled Status = "canceled"

	// StatusUnknown is the defensive fallback for values outside the
	// closed set. It classifies as neither open nor overdue.
	StatusUnknown Status = "unknown"
)

// ParseStatus normalizes a raw status string from the API. The
// alternate spelling "cancelled" maps to canceled. This is the only
// place canonicalization happens; consumers work with the enum.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, nil
	case "paid":
		return StatusPaid, nil
	case "overdue":
		return StatusOverdue, nil
	case "canceled", "cancelled":
		return StatusCanceled, nil
	default:
		return StatusUnknown, customError.WrapUnknownStatus(raw)
	}
}

// UnmarshalJSON decodes and normalizes in one step so boundary types
// never carry a raw status. Unknown values decode to StatusUnknown
// without failing the whole payload; the caller decides how loudly to
// complain.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, _ := ParseStatus(raw)
	*s = parsed
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsOpen reports whether the installment still carries collectible
// balance: pending or overdue.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusOverdue
}

// IsSettled reports whether payment operations must be rejected.
func (s Status) IsSettled() bool {
	return s == StatusPaid || s == StatusCanceled
}
