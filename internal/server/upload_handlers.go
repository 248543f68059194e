package server

import (
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"gymflick/internal/models"
	"gymflick/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadFlickImage handles POST /api/uploads/flick-image
// @Summary Upload a flick image
// @Description Accepts a multipart image, normalizes it to JPEG, and returns its download URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpeg, png, or webp)"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} object{error=string}
// @Router /uploads/flick-image [post]
func (s *Server) UploadFlickImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	result, err := s.uploadService.Upload(c.Context(), service.UploadInput{
		UserID:      userID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// ServeMediaObject handles GET /media/o/+ and streams a stored object. The
// wildcard segment is the percent-encoded object path, matching the download
// URLs the storage layer hands out.
func (s *Server) ServeMediaObject(c *fiber.Ctx) error {
	raw := c.Params("+")
	objectPath, err := url.QueryUnescape(raw)
	if err != nil || objectPath == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid object path"))
	}

	clean := filepath.Clean(filepath.FromSlash(objectPath))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid object path"))
	}

	return c.SendFile(filepath.Join(s.config.StorageDir, clean))
}
