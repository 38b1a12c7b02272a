package cli

import "github.com/fabianodasilvalira/tatystore-billing/internal/domain"

// displayStatus renders a status for terminal output. Unknown values
// degrade to a neutral placeholder instead of a guess.
func displayStatus(s domain.Status) string {
	if s == domain.StatusUnknown {
		return "--"
	}
	return s.String()
}
