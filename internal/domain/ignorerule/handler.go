package ignorerule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
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
	api.GET("/storage/:code/ignore-rules", h.List)
	api.POST("/storage/:code/ignore-rules", h.Create)
	api.DELETE("/storage/:code/ignore-rules/:id", h.Delete)

	api.GET("/storage/:code/profile", h.GetProfile)
	api.PUT("/storage/:code/profile", h.PutProfile)
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrBadRequest) || errors.Is(err, storagecode.ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "ignore rule storage failed")
}

func (h *Handler) List(c echo.Context) error {
	rules, err := h.svc.List(c.Request().Context(), c.Param("code"))
	if err != nil {
		return httpError(err)
	}
	if rules == nil {
		rules = []*Rule{}
	}
	return c.JSON(http.StatusOK, rules)
}

type createRequest struct {
	RuleText string `json:"rule_text"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rule, err := h.svc.Create(c.Request().Context(), c.Param("code"), req.RuleText)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rule)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), c.Param("code"), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "ignore rule not found")
		}
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.svc.GetProfile(c.Request().Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

type putProfileRequest struct {
	Text string `json:"text"`
}

func (h *Handler) PutProfile(c echo.Context) error {
	var req putProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.svc.PutProfile(c.Request().Context(), c.Param("code"), req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
