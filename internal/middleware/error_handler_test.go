package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aiMarketingMsg/pkg/apperror"

	"github.com/labstack/echo/v4"
)

func runErrorHandler(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandlerAppError(t *testing.T) {
	err := apperror.New(apperror.CodeCampaignNotFound, "campaign not found").
		WithDetail("campaignId", 10)

	status, body := runErrorHandler(t, err)

	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if body["code"] != "CAMPAIGN_NOT_FOUND" {
		t.Errorf("code = %v", body["code"])
	}
	detail, _ := body["data"].(map[string]any)
	if detail["campaignId"] != float64(10) {
		t.Errorf("detail = %v", body["data"])
	}
}

func TestErrorHandlerEchoHTTPError(t *testing.T) {
	status, body := runErrorHandler(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))

	if status != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", status)
	}
	if body["message"] != "method not allowed" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestErrorHandlerUnknownError(t *testing.T) {
	status, body := runErrorHandler(t, errors.New("kaboom"))

	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body["code"] != "INTERNAL_SERVER_ERROR" {
		t.Errorf("code = %v", body["code"])
	}
	if body["message"] == "kaboom" {
		t.Error("internal error detail must not leak to the client")
	}
}

func TestErrorHandlerCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.NoContent(http.StatusOK)
	ErrorHandler(errors.New("late failure"), c)

	if rec.Body.Len() != 0 {
		t.Error("nothing should be written after the response is committed")
	}
}
