package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable machine readable error code surfaced at the API boundary.
type Code string

const (
	CodeValidation           Code = "VALIDATION_ERROR"
	CodeCustomerNotFound     Code = "CUSTOMER_NOT_FOUND"
	CodeProductNotFound      Code = "PRODUCT_NOT_FOUND"
	CodeCampaignNotFound     Code = "CAMPAIGN_NOT_FOUND"
	CodeSegmentNotFound      Code = "SEGMENT_NOT_FOUND"
	CodeMessageNotFound      Code = "MESSAGE_NOT_FOUND"
	CodeUserNotFound         Code = "USER_NOT_FOUND"
	CodeNoEligibleItems      Code = "NO_ELIGIBLE_ITEMS"
	CodeProviderFailed       Code = "PROVIDER_ERROR"
	CodeMalformedResponse    Code = "MALFORMED_RESPONSE"
	CodeReconciliationFailed Code = "RECONCILIATION_FAILED"
	CodeCampaignNotDeletable Code = "CAMPAIGN_CANNOT_BE_DELETED"
	CodeProductNotDeletable  Code = "PRODUCT_CANNOT_BE_DELETED"
	CodeInvalidDateRange     Code = "INVALID_CAMPAIGN_DATE"
	CodeDuplicateEmail       Code = "EMAIL_ALREADY_EXISTS"
	CodeUnauthorized         Code = "UNAUTHORIZED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeInternal             Code = "INTERNAL_SERVER_ERROR"
)

var statusByCode = map[Code]int{
	CodeValidation:           http.StatusBadRequest,
	CodeCustomerNotFound:     http.StatusNotFound,
	CodeProductNotFound:      http.StatusNotFound,
	CodeCampaignNotFound:     http.StatusNotFound,
	CodeSegmentNotFound:      http.StatusNotFound,
	CodeMessageNotFound:      http.StatusNotFound,
	CodeUserNotFound:         http.StatusNotFound,
	CodeNoEligibleItems:      http.StatusUnprocessableEntity,
	CodeProviderFailed:       http.StatusBadGateway,
	CodeMalformedResponse:    http.StatusBadGateway,
	CodeReconciliationFailed: http.StatusUnprocessableEntity,
	CodeCampaignNotDeletable: http.StatusBadRequest,
	CodeProductNotDeletable:  http.StatusBadRequest,
	CodeInvalidDateRange:     http.StatusBadRequest,
	CodeDuplicateEmail:       http.StatusConflict,
	CodeUnauthorized:         http.StatusUnauthorized,
	CodeForbidden:            http.StatusForbidden,
	CodeInternal:             http.StatusInternalServerError,
}

// AppError carries a stable code plus structured detail so failures can be
// logged and surfaced without string matching on messages.
type AppError struct {
	Code    Code
	Message string
	Detail  map[string]any
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Status maps the code to an HTTP status for the boundary layer.
func (e *AppError) Status() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, cause: cause}
}

// WithDetail attaches one structured detail entry. Returns the receiver so
// calls can be chained on construction.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Detail == nil {
		e.Detail = map[string]any{}
	}
	e.Detail[key] = value
	return e
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}
