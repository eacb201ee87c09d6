package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeCustomerNotFound, http.StatusNotFound},
		{CodeNoEligibleItems, http.StatusUnprocessableEntity},
		{CodeProviderFailed, http.StatusBadGateway},
		{CodeDuplicateEmail, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{Code("SOMETHING_NEW"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := New(tt.code, "x").Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeProviderFailed, "provider call failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if got := err.Error(); got != "PROVIDER_ERROR: provider call failed: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAsAndIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeCampaignNotFound, "campaign not found"))

	appErr, ok := As(err)
	if !ok {
		t.Fatal("As() should find the AppError through the chain")
	}
	if appErr.Code != CodeCampaignNotFound {
		t.Errorf("code = %s, want CAMPAIGN_NOT_FOUND", appErr.Code)
	}

	if !Is(err, CodeCampaignNotFound) {
		t.Error("Is() should match the carried code")
	}
	if Is(err, CodeProductNotFound) {
		t.Error("Is() should not match a different code")
	}
	if Is(errors.New("plain"), CodeCampaignNotFound) {
		t.Error("Is() on a plain error should be false")
	}
}

func TestWithDetailChains(t *testing.T) {
	err := New(CodeValidation, "bad input").
		WithDetail("field", "price").
		WithDetail("value", -1)

	if err.Detail["field"] != "price" {
		t.Errorf("detail field = %v", err.Detail["field"])
	}
	if err.Detail["value"] != -1 {
		t.Errorf("detail value = %v", err.Detail["value"])
	}
}
