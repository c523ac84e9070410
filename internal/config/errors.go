package config

import (
	"fmt"
	"strings"
)

// Error is a configuration error. Fields names the environment variables
// that are missing or invalid, when known.
type Error struct {
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	msg := "config: " + e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
