package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError reports input the service refused, keyed by form field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// checkLength records a message when value is empty or its rune count is outside [min, max].
func (e *ValidationError) checkLength(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		e.add(field, "This field is required.")
	case n < min:
		e.add(field, fmt.Sprintf("Must be at least %d characters.", min))
	case n > max:
		e.add(field, fmt.Sprintf("Must be at most %d characters.", max))
	}
}

func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// normalizeUsername is applied to every username before it is stored or looked up.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
