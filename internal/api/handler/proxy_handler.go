package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/apiintegration/taskhub/internal/core/ports"
)

// ProxyHandler relays calls to the user directory and the image classifier.
// Upstream status codes and bodies are passed through untouched.
type ProxyHandler struct {
	service ports.ProxyService
}

func NewProxyHandler(service ports.ProxyService) *ProxyHandler {
	return &ProxyHandler{service: service}
}

// ListUsers handles GET /api/users and GET /api/predictions.
//
// @Summary      List users from the public directory
// @Tags         users
// @Produce      json
// @Success      200  {array}   object
// @Failure      502  {object}  errorResponse
// @Router       /api/users [get]
func (h *ProxyHandler) ListUsers(c echo.Context) error {
	resp, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return relay(c, resp)
}

// PredictURL handles POST /api/predictions/url. The body is a bare JSON string.
//
// @Summary      Classify an image by URL
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        body  body      string  true  "Image URL"
// @Success      200   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/predictions/url [post]
func (h *ProxyHandler) PredictURL(c echo.Context) error {
	var imageURL string
	if err := c.Bind(&imageURL); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "image url is required")
	}

	resp, err := h.service.PredictURL(c.Request().Context(), imageURL)
	if err != nil {
		return err
	}
	return relay(c, resp)
}

// PredictUpload handles POST /api/predictions/upload.
//
// @Summary      Classify an uploaded image
// @Tags         predictions
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/predictions/upload [post]
func (h *ProxyHandler) PredictUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil || fh.Size == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}

	file, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	defer file.Close()

	resp, err := h.service.PredictUpload(c.Request().Context(), fh.Filename, file)
	if err != nil {
		return err
	}
	return relay(c, resp)
}

func relay(c echo.Context, resp *ports.UpstreamResponse) error {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMETextPlainCharsetUTF8
	}
	return c.Blob(resp.StatusCode, contentType, resp.Body)
}
