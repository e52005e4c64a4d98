// ABOUTME: Shared extraction of user-facing messages from a failed request
// ABOUTME: Every form renders errors through this one function

package feedback

import (
	"errors"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
)

// Messages converts any error into an ordered, never-empty list of strings
// to show the user. Field-level validation messages win over a bare string
// detail, which wins over the error's own message; anything that is not an
// *api.Error gets the caller's fallback.
func Messages(err error, fallback string) []string {
	var apiErr *api.Error
	if err == nil || !errors.As(err, &apiErr) {
		return []string{fallback}
	}

	if msgs := apiErr.Fields.Flatten(); len(msgs) > 0 {
		return msgs
	}
	if apiErr.Detail != "" {
		return []string{apiErr.Detail}
	}
	if apiErr.Message != "" {
		return []string{apiErr.Message}
	}
	return []string{fallback}
}
