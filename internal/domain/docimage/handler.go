package docimage

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medclip/medclip/internal/llm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/images/analyze", h.Analyze)
}

// Analyze accepts either a JSON body with base64 images or a multipart form
// with the images as file parts.
func (h *Handler) Analyze(c echo.Context) error {
	var req Request
	var err error
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		req, err = bindMultipart(c)
	} else {
		err = c.Bind(&req)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.Analyze(c.Request().Context(), req)
	if errors.Is(err, ErrBadRequest) || errors.Is(err, llm.ErrNoEngine) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		if c.Request().Context().Err() != nil {
			return echo.NewHTTPError(http.StatusRequestTimeout, "analysis cancelled")
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func bindMultipart(c echo.Context) (Request, error) {
	req := Request{
		StorageCode:      c.FormValue("storage_code"),
		DocumentType:     c.FormValue("document_type"),
		Mode:             c.FormValue("mode"),
		ReaderModel:      c.FormValue("reader_model"),
		InterpreterModel: c.FormValue("interpreter_model"),
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, err
	}
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return req, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return req, err
		}
		req.Images = append(req.Images, ImageInput{
			Name:      fh.Filename,
			MediaType: fh.Header.Get("Content-Type"),
			Data:      base64.StdEncoding.EncodeToString(data),
		})
	}
	return req, nil
}
