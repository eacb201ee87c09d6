package rest

import (
	"strconv"

	"aiMarketingMsg/pkg/apperror"

	"github.com/labstack/echo/v4"
)

func parseIDParam(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.New(apperror.CodeValidation, "invalid "+name).
			WithDetail(name, raw)
	}
	return id, nil
}

// parseQueryUint reads an optional numeric query parameter, returning 0 when
// it is absent.
func parseQueryUint(c echo.Context, name string) (uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, "invalid "+name).
			WithDetail(name, raw)
	}
	return id, nil
}

func parseQueryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
