package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"strings"
	"time"

	"gymflick/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const (
	DefaultUploadMaxSizeMB = 10
	UploadMaxDimension     = 2048
	UploadJPEGQuality      = 82
)

// UploadInput is a raw image upload from a client.
type UploadInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// UploadResult describes the stored flick image.
type UploadResult struct {
	ObjectPath string `json:"object_path"`
	URL        string `json:"url"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SizeBytes  int    `json:"size_bytes"`
}

// UploadService normalizes client images into JPEG objects for flicks. All
// inputs are re-encoded, so the stored object never carries client bytes
// verbatim. Object paths are keyed by upload time in milliseconds.
type UploadService struct {
	storage            ObjectStorage
	maxUploadSizeBytes int64
	now                func() time.Time
}

// NewUploadService returns an UploadService storing into the given backend.
func NewUploadService(storage ObjectStorage) *UploadService {
	return &UploadService{
		storage:            storage,
		maxUploadSizeBytes: int64(DefaultUploadMaxSizeMB) * 1024 * 1024,
		now:                time.Now,
	}
}

// Upload validates, normalizes, and stores a flick image, returning its
// download URL.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedUploadMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, detectedType) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	decoded, err := decodeUploadImage(detectedType, in.Content)
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	normalized := resizeToFit(decoded, UploadMaxDimension, UploadMaxDimension)
	encoded, err := encodeJPEG(normalized, UploadJPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	objectPath := fmt.Sprintf("postImages/%d.jpg", s.now().UnixMilli())
	url, err := s.storage.Put(ctx, objectPath, encoded, "image/jpeg")
	if err != nil {
		return nil, err
	}

	bounds := normalized.Bounds()
	return &UploadResult{
		ObjectPath: objectPath,
		URL:        url,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		SizeBytes:  len(encoded),
	}, nil
}

func decodeUploadImage(detectedType string, content []byte) (image.Image, error) {
	if normalizeContentType(detectedType) == "image/webp" {
		return webp.Decode(bytes.NewReader(content))
	}
	img, _, err := image.Decode(bytes.NewReader(content))
	return img, err
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedUploadMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}
