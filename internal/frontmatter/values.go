package frontmatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted date format in header blocks.
const DateLayout = "2006-01-02"

var (
	ErrEmptyValue   = errors.New("value cannot be empty or consist of only whitespace characters")
	ErrInvalidBool  = errors.New("value must be either 'true' or 'false'")
	ErrInvalidDate  = errors.New("value must be a date in the format YYYY-MM-DD")
	ErrInvalidList  = errors.New("value must be a comma-separated list of non-empty items")
	ErrMissingField = errors.New("missing header field")
)

// String returns the trimmed, non-empty value of field.
func (h Header) String(field string) (string, error) {
	v, ok := h[field]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrMissingField, field)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s field: %w", field, ErrEmptyValue)
	}
	return v, nil
}

// Bool parses field as a strict boolean.
func (h Header) Bool(field string) (bool, error) {
	v, err := h.String(field)
	if err != nil {
		return false, err
	}
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%s field: %w", field, ErrInvalidBool)
}

// Date parses field using DateLayout.
func (h Header) Date(field string) (time.Time, error) {
	v, err := h.String(field)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s field: %w", field, ErrInvalidDate)
	}
	return d, nil
}

// List parses field as a comma-separated list, trimming each item.
func (h Header) List(field string) ([]string, error) {
	v, err := h.String(field)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%s field: %w", field, ErrInvalidList)
		}
		out = append(out, p)
	}
	return out, nil
}

// FormatBool renders b the way Bool parses it.
func FormatBool(b bool) string { return strconv.FormatBool(b) }

// FormatDate renders t the way Date parses it.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatList renders items the way List parses them.
func FormatList(items []string) string { return strings.Join(items, ", ") }
