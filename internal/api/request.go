package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/promptforge/promptforge/internal/utils"
)

var (
	// errIdeaMissing marks a userIdea that is absent, falsy or blank.
	errIdeaMissing   = errors.New("user idea is missing")
	errIdeaNotString = errors.New("user idea is not a string")
	errNullBody      = errors.New("request body is null")
)

// decodeUserIdea pulls the exact "userIdea" key out of a JSON body.
//
// The body must be a single JSON value. A null body cannot be
// destructured and is an error; any other non-object body simply has no
// userIdea. Falsy values (null, false, 0, "") and blank strings yield
// errIdeaMissing. Other non-string values yield errIdeaNotString.
func decodeUserIdea(body []byte) (string, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("failed to parse request body: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	switch raw[0] {
	case 'n':
		return "", errNullBody
	case '{':
	default:
		return "", errIdeaMissing
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("failed to parse request body: %w", err)
	}
	value, ok := fields["userIdea"]
	if !ok {
		return "", errIdeaMissing
	}
	value = bytes.TrimSpace(value)

	switch value[0] {
	case 'n', 'f':
		return "", errIdeaMissing
	case '"':
		var idea string
		if err := json.Unmarshal(value, &idea); err != nil {
			return "", fmt.Errorf("failed to parse userIdea: %w", err)
		}
		if utils.IsBlank(idea) {
			return "", errIdeaMissing
		}
		return idea, nil
	case 't', '{', '[':
		return "", errIdeaNotString
	default:
		// Numbers: zero is falsy, anything else is a non-string.
		f, _ := strconv.ParseFloat(string(value), 64)
		if f == 0 {
			return "", errIdeaMissing
		}
		return "", errIdeaNotString
	}
}
