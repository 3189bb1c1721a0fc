package validators

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
)

// ParseQueryInt reads an optional integer query parameter, returning fallback
// when the parameter is absent.
func ParseQueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("query parameter %q must be an integer", name))
	}
	return value, nil
}

// ParseQueryFloat reads an optional float query parameter, returning fallback
// when the parameter is absent.
func ParseQueryFloat(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("query parameter %q must be a number", name))
	}
	return value, nil
}

// ParseQueryBool reads an optional boolean query parameter. A nil result
// means the parameter was absent.
func ParseQueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("query parameter %q must be true or false", name))
	}
	return &value, nil
}

// ParseUUIDParam parses a path parameter as a UUID.
func ParseUUIDParam(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("path parameter %q must be a valid UUID", name))
	}
	return id, nil
}
