package template

import (
	"errors"
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
	api.GET("/storage/:code/templates", h.Get)
	api.PUT("/storage/:code/templates", h.Put)
	api.POST("/storage/:code/templates", h.Merge)
	api.DELETE("/storage/:code/templates", h.Delete)
}

func httpError(err error) *echo.HTTPError {
	if errors.Is(err, ErrBadRequest) || errors.Is(err, storagecode.ErrInvalid) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "template storage failed")
}

func (h *Handler) Get(c echo.Context) error {
	templates, err := h.svc.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, templates)
}

func (h *Handler) Put(c echo.Context) error {
	var templates []Template
	if err := c.Bind(&templates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Put(c.Request().Context(), c.Param("code"), templates); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, templates)
}

func (h *Handler) Merge(c echo.Context) error {
	var incoming []Template
	if err := c.Bind(&incoming); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	merged, err := h.svc.Merge(c.Request().Context(), c.Param("code"), incoming)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, merged)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
