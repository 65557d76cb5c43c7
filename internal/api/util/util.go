package util

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clipfetch/clipfetch/internal/convert"
	"github.com/clipfetch/clipfetch/internal/media"
	"github.com/clipfetch/clipfetch/internal/run"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NewValidator constructs the request validator shared by the
// controllers. The 'mediaformat' rule constrains a field to the known
// media format set; keeping the set in one place means the fetch and
// convert DTOs cannot drift apart.
func NewValidator() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("mediaformat", func(fl validator.FieldLevel) bool {
		return media.IsValidFormat(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return validate
}

// MapServiceError translates service-layer failures into their HTTP
// representations. External tool failures carry a bounded diagnostic
// excerpt; no distinction is made between transient and permanent
// tool failures.
func MapServiceError(err error) *echo.HTTPError {
	var toolErr *run.ExternalToolError

	switch {
	case errors.Is(err, convert.ErrInputNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &toolErr):
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{
			"message":   "external tool invocation failed",
			"exit_code": toolErr.ExitCode,
			"output":    toolErr.Output,
		})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// QueryLimit parses a 'limit' query parameter, falling back to dflt
// when absent or unparseable.
func QueryLimit(ec echo.Context, dflt int) int {
	raw := ec.QueryParam("limit")
	if raw == "" {
		return dflt
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return dflt
	}

	return limit
}
