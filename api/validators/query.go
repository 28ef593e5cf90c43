package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// RequireQueryInt is ParseQueryInt for parameters without a default.
func RequireQueryInt(r *http.Request, key string, min, max int) (int, error) {
	if strings.TrimSpace(r.URL.Query().Get(key)) == "" {
		return 0, missingParam(key)
	}
	return ParseQueryInt(r, key, 0, min, max)
}

// ParseOptionalUint returns nil when the parameter is absent.
func ParseOptionalUint(r *http.Request, key string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := parseID(key, raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// ParseIDParam reads a positive integer id from a chi URL parameter.
func ParseIDParam(r *http.Request, key string) (uint, error) {
	return parseID(key, chi.URLParam(r, key))
}

func parseID(key, raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "id must be a positive integer").WithDetails(map[string]any{"field": key})
	}
	return uint(value), nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339. Absent values return the zero time and false.
func ParseDate(r *http.Request, key string) (time.Time, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, pkgerrors.New(pkgerrors.CodeValidation, "invalid date").
		WithDetails(map[string]any{"field": key, "format": "YYYY-MM-DD or RFC3339"})
}

// RequireDate is ParseDate for mandatory parameters.
func RequireDate(r *http.Request, key string) (time.Time, error) {
	t, ok, err := ParseDate(r, key)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, missingParam(key)
	}
	return t, nil
}

// ParseEnum converts an optional query value with parse. Absent values return the zero value.
func ParseEnum[T ~string](r *http.Request, key string, parse func(string) (T, error)) (T, bool, error) {
	var zero T
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return zero, false, nil
	}
	value, err := parse(raw)
	if err != nil {
		return zero, false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key).
			WithDetails(map[string]any{"field": key})
	}
	return value, true, nil
}

func missingParam(key string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, key+" is required").
		WithDetails(map[string]any{"field": key})
}
