package rest

import (
	"net/http"

	"aiMarketingMsg/domain"

	jsonres "aiMarketingMsg/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// ToneHandler serves the fixed tone and manner catalog marketers pick from.
type ToneHandler struct{}

func NewToneHandler() *ToneHandler {
	return &ToneHandler{}
}

func (h *ToneHandler) GetAllTones(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.Tones()))
}

func (h *ToneHandler) GetToneByID(c echo.Context) error {
	id := c.Param("id")
	if !domain.IsKnownTone(id) {
		return c.JSON(http.StatusNotFound, jsonres.Error(
			"TONE_NOT_FOUND", "unknown tone id: "+id, nil,
		))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.ToneByID(id)))
}
