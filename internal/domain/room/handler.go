package room

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medclip/medclip/internal/domain/storagecode"
)

type Handler struct {
	push Store
	pull Store
}

func NewHandler(push, pull Store) *Handler {
	return &Handler{push: push, pull: pull}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/rooms/:direction/:key", h.Send)
	api.GET("/rooms/:direction/:key", h.Poll)
	api.DELETE("/rooms/:direction/:key", h.Clear)
}

func (h *Handler) store(c echo.Context) (Store, error) {
	switch c.Param("direction") {
	case DirectionPush:
		return h.push, nil
	case DirectionPull:
		return h.pull, nil
	default:
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown relay direction")
	}
}

func roomKey(c echo.Context) (string, error) {
	key := c.Param("key")
	if err := storagecode.Validate(key); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return key, nil
}

type sendRequest struct {
	Text string `json:"text"`
}

func (h *Handler) Send(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}
	key, err := roomKey(c)
	if err != nil {
		return err
	}

	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := store.Set(c.Request().Context(), key, req.Text); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "stored"})
}

func (h *Handler) Poll(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}
	key, err := roomKey(c)
	if err != nil {
		return err
	}

	entry, err := store.Get(c.Request().Context(), key)
	if errors.Is(err, ErrNotFound) {
		// An empty room is the steady state while polling, not an error.
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) Clear(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}
	key, err := roomKey(c)
	if err != nil {
		return err
	}

	if err := store.Delete(c.Request().Context(), key); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
