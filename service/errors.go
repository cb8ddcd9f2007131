package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"ptalk-server/dao/redis"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrActionNotAllowed     = errors.New("action not allowed for this venue")
	ErrConflictNotConfirmed = errors.New("opening hours would overwrite existing days; confirmation required")
	ErrNothingToApply       = errors.New("no opening hours recognized to apply")
	ErrInvalidCoordinate    = errors.New("cannot parse coordinate")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEmailTaken           = errors.New("email already registered")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrAccountDisabled      = errors.New("merchant account is disabled")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func isNotFound(err error) bool {
	return errors.Is(err, redis.ErrNotFound) || errors.Is(err, ErrNotFound)
}

// translateNotFound maps storage misses onto ErrNotFound.
func translateNotFound(err error, what string) error {
	if isNotFound(err) {
		return errors.Wrap(ErrNotFound, what)
	}
	return err
}
