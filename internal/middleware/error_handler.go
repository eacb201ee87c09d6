package middleware

import (
	"net/http"

	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	jsonres "aiMarketingMsg/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler maps errors that escape a handler to the JSON error envelope.
// AppError codes keep their HTTP status, echo errors keep theirs, anything
// else is a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := apperror.As(err); ok {
		if writeErr := c.JSON(appErr.Status(), jsonres.Error(
			string(appErr.Code), appErr.Message, appErr.Detail,
		)); writeErr != nil {
			logger.Error("failed to write error response", writeErr)
		}
		return
	}

	if httpErr, ok := err.(*echo.HTTPError); ok {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		if writeErr := c.JSON(httpErr.Code, jsonres.Error(
			"HTTP_ERROR", message, nil,
		)); writeErr != nil {
			logger.Error("failed to write error response", writeErr)
		}
		return
	}

	logger.Error("unhandled error", err)
	if writeErr := c.JSON(http.StatusInternalServerError, jsonres.Error(
		string(apperror.CodeInternal), "internal server error", nil,
	)); writeErr != nil {
		logger.Error("failed to write error response", writeErr)
	}
}
