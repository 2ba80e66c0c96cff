package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/spendtrails-site/internal/dto"
	"github.com/noah-isme/spendtrails-site/internal/models"
	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
	"github.com/noah-isme/spendtrails-site/pkg/response"
)

type statusReporter interface {
	Report() dto.CMSStatusResponse
}

type imageURLBuilder interface {
	URL(ref string, opts models.ImageOptions) (string, error)
	Dimensions(ref string) models.ImageDimensions
	BlurDataURL(ref string) string
}

// CMSHandler exposes CMS diagnostics and image helpers.
type CMSHandler struct {
	status    statusReporter
	images    imageURLBuilder
	validator *validator.Validate
}

// NewCMSHandler constructs a CMSHandler.
func NewCMSHandler(status statusReporter, images imageURLBuilder, validate *validator.Validate) *CMSHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &CMSHandler{status: status, images: images, validator: validate}
}

// Status godoc
// @Summary CMS configuration status
// @Tags CMS
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cms/status [get]
func (h *CMSHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.status.Report(), 0)
}

// Image godoc
// @Summary Build an image CDN URL
// @Tags CMS
// @Produce json
// @Param ref query string true "Image asset reference"
// @Param w query int false "Width"
// @Param h query int false "Height"
// @Param blur query int false "Blur radius"
// @Param q query int false "Quality"
// @Param fm query string false "Output format"
// @Param fit query string false "Fit mode"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cms/image [get]
func (h *CMSHandler) Image(c *gin.Context) {
	var req dto.ImageURLRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid image query"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid image query"))
		return
	}

	url, err := h.images.URL(req.Ref, models.ImageOptions{
		Width:   req.Width,
		Height:  req.Height,
		Blur:    req.Blur,
		Quality: req.Quality,
		Format:  req.Format,
		Fit:     req.Fit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.ImageURLResponse{
		URL:         url,
		Dimensions:  h.images.Dimensions(req.Ref),
		BlurDataURL: h.images.BlurDataURL(req.Ref),
	}, contentMaxAge)
}
