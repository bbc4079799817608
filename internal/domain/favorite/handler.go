package favorite

import (
	"errors"
	"net/http"
	"strconv"

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
	api.GET("/storage/:code/favorites", h.Get)
	api.PUT("/storage/:code/favorites", h.Put)
	api.POST("/storage/:code/favorites", h.Merge)
	api.DELETE("/storage/:code/favorites/:index", h.DeleteAt)
}

func httpError(err error) *echo.HTTPError {
	if errors.Is(err, ErrBadRequest) || errors.Is(err, storagecode.ErrInvalid) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "favorite storage failed")
}

func (h *Handler) Get(c echo.Context) error {
	favorites, err := h.svc.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, favorites)
}

func (h *Handler) Put(c echo.Context) error {
	var favorites []string
	if err := c.Bind(&favorites); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Put(c.Request().Context(), c.Param("code"), favorites); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, favorites)
}

func (h *Handler) Merge(c echo.Context) error {
	var incoming []string
	if err := c.Bind(&incoming); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	merged, err := h.svc.Merge(c.Request().Context(), c.Param("code"), incoming)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, merged)
}

func (h *Handler) DeleteAt(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid index")
	}
	remaining, err := h.svc.DeleteAt(c.Request().Context(), c.Param("code"), index)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, remaining)
}
