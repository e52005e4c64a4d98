// ABOUTME: Normalizes API error responses into a single structured error type
// ABOUTME: Every failed request yields an *Error with a non-empty message

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Messages shown when the server gives us nothing better.
const (
	genericFailureMessage = "Request failed"
	networkFailureMessage = "Cannot reach the server. Please try again."
	invalidBodyMessage    = "Invalid response from server"
)

// FieldError holds the validation messages for a single form field.
type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors preserves the order fields appeared in the response body,
// so extracted messages render in a stable order.
type FieldErrors []FieldError

// Flatten returns all messages across all fields, field order first,
// then message order within each field.
func (f FieldErrors) Flatten() []string {
	var out []string
	for _, fe := range f {
		out = append(out, fe.Messages...)
	}
	return out
}

// Error is the single representation of a failed API call.
// Status is 0 when no HTTP response was received at all.
// Fields carries server-side validation errors; Detail carries a bare
// string detail. At most one of the two is set.
type Error struct {
	Status  int
	Message string
	Fields  FieldErrors
	Detail  string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Normalize converts a non-2xx response body into an *Error. It is total:
// any body, including garbage or an empty one, yields an error with a
// non-empty message.
func Normalize(status int, body []byte) *Error {
	e := &Error{Status: status, Message: genericFailureMessage}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return e
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil && s != "" {
			e.Detail = s
		}
		return e
	case '{':
		var envelope struct {
			Message string          `json:"message"`
			Errors  json.RawMessage `json:"errors"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return e
		}
		if envelope.Message != "" {
			e.Message = envelope.Message
		}
		if len(envelope.Errors) > 0 && !bytes.Equal(envelope.Errors, []byte("null")) {
			// The errors value may itself be a bare string.
			var s string
			if json.Unmarshal(envelope.Errors, &s) == nil {
				e.Detail = s
				return e
			}
			e.Fields = parseFieldErrors(envelope.Errors)
			return e
		}
		// No errors key: treat the whole body as the detail mapping. This
		// covers APIs that return a bare error object like {"error": "..."}.
		e.Fields = parseFieldErrors(trimmed)
		return e
	default:
		return e
	}
}

// parseFieldErrors decodes a JSON object into an ordered field-error list.
// Values may be a string or an array of strings; anything else is skipped.
// Never fails: a non-object input yields nil.
func parseFieldErrors(raw []byte) FieldErrors {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var fields FieldErrors
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fields
		}
		key, ok := keyTok.(string)
		if !ok {
			return fields
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fields
		}

		if msgs := stringMessages(value); len(msgs) > 0 {
			fields = append(fields, FieldError{Field: key, Messages: msgs})
		}
	}
	return fields
}

// stringMessages extracts the message list from a field value.
func stringMessages(raw json.RawMessage) []string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	var msgs []string
	for _, item := range list {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
