package settings

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medclip/medclip/internal/domain/storagecode"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/storage/:code/settings", h.Get)
	api.PUT("/storage/:code/settings", h.Put)
	api.DELETE("/storage/:code/settings", h.Delete)
}

func httpError(err error) *echo.HTTPError {
	if errors.Is(err, ErrBadRequest) || errors.Is(err, storagecode.ErrInvalid) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "settings storage failed")
}

func (h *Handler) Get(c echo.Context) error {
	blob, err := h.svc.Get(c.Request().Context(), c.Param("code"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no settings stored for this code")
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSONBlob(http.StatusOK, blob)
}

func (h *Handler) Put(c echo.Context) error {
	blob, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Put(c.Request().Context(), c.Param("code"), blob); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
