package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Arguments is the decoded argument object of a function call.
type Arguments map[string]any

// DecodeArguments parses raw argument text. Anything other than a JSON object
// is rejected.
func DecodeArguments(raw string) (Arguments, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("arguments are empty")
	}
	if trimmed[0] != '{' {
		return nil, errors.New("arguments are not a JSON object")
	}

	var args Arguments
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = Arguments{}
	}
	return args, nil
}

// String returns the string field at key.
func (a Arguments) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", &ArgumentError{Key: key, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgumentError{Key: key, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

// Int returns the integral number at key.
func (a Arguments) Int(key string) (int, error) {
	v, ok := a[key]
	if !ok {
		return 0, &ArgumentError{Key: key, Reason: "missing"}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &ArgumentError{Key: key, Reason: fmt.Sprintf("expected number, got %T", v)}
	}
	if f != math.Trunc(f) {
		return 0, &ArgumentError{Key: key, Reason: fmt.Sprintf("expected integer, got %v", f)}
	}
	// float64(math.MinInt) is exact; its negation is one past math.MaxInt
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, &ArgumentError{Key: key, Reason: fmt.Sprintf("integer %v out of range", f)}
	}
	return int(f), nil
}

// Bool returns the boolean at key.
func (a Arguments) Bool(key string) (bool, error) {
	v, ok := a[key]
	if !ok {
		return false, &ArgumentError{Key: key, Reason: "missing"}
	}
	b, ok := v.(bool)
	if !ok {
		return false, &ArgumentError{Key: key, Reason: fmt.Sprintf("expected boolean, got %T", v)}
	}
	return b, nil
}

// Decode copies the arguments into a typed value via JSON.
func (a Arguments) Decode(into any) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}
	return nil
}
