package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"
)

func makeTestImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := encode(buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) }
func encodeJPG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func fixedClockUploadService(store ObjectStorage, ms int64) *UploadService {
	svc := NewUploadService(store)
	svc.now = func() time.Time { return time.UnixMilli(ms) }
	return svc
}

func TestUploadServiceStoresTimestampedJPEG(t *testing.T) {
	var storedPath, storedType string
	store := noopStorage()
	store.putFn = func(_ context.Context, p string, data []byte, ct string) (string, error) {
		storedPath = p
		storedType = ct
		if len(data) == 0 {
			t.Fatal("expected encoded bytes")
		}
		return "url://" + p, nil
	}

	svc := fixedClockUploadService(store, 1712345678901)
	res, err := svc.Upload(context.Background(), UploadInput{
		UserID:      1,
		Filename:    "photo.png",
		ContentType: "image/png",
		Content:     makeTestImage(t, 64, 48, encodePNG),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if storedPath != "postImages/1712345678901.jpg" {
		t.Fatalf("unexpected object path %q", storedPath)
	}
	if storedType != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", storedType)
	}
	if res.URL != "url://postImages/1712345678901.jpg" {
		t.Fatalf("unexpected url %q", res.URL)
	}
	if res.Width != 64 || res.Height != 48 {
		t.Fatalf("unexpected dimensions %dx%d", res.Width, res.Height)
	}
}

func TestUploadServiceResizesOversizedImages(t *testing.T) {
	store := noopStorage()
	svc := fixedClockUploadService(store, 1)

	res, err := svc.Upload(context.Background(), UploadInput{
		UserID:  1,
		Content: makeTestImage(t, UploadMaxDimension*2, UploadMaxDimension, encodeJPG),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Width > UploadMaxDimension || res.Height > UploadMaxDimension {
		t.Fatalf("image not resized: %dx%d", res.Width, res.Height)
	}
	// Aspect preserved: 2:1 input stays 2:1.
	if res.Width != 2*res.Height {
		t.Fatalf("aspect ratio not preserved: %dx%d", res.Width, res.Height)
	}
}

func TestUploadServiceRejectsBadInput(t *testing.T) {
	svc := fixedClockUploadService(noopStorage(), 1)
	ctx := context.Background()

	tests := []struct {
		name string
		in   UploadInput
	}{
		{name: "missing user", in: UploadInput{Content: makeTestImage(t, 4, 4, encodePNG)}},
		{name: "empty body", in: UploadInput{UserID: 1}},
		{name: "not an image", in: UploadInput{UserID: 1, Content: []byte(strings.Repeat("text", 100))}},
		{name: "truncated image", in: UploadInput{UserID: 1, Content: makeTestImage(t, 64, 64, encodePNG)[:20]}},
		{
			name: "content type mismatch",
			in: UploadInput{
				UserID:      1,
				ContentType: "image/png",
				Content:     makeTestImage(t, 4, 4, encodeJPG),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.in)
			assertAppError(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestUploadServiceRejectsOversizedBody(t *testing.T) {
	svc := fixedClockUploadService(noopStorage(), 1)
	svc.maxUploadSizeBytes = 10

	_, err := svc.Upload(context.Background(), UploadInput{
		UserID:  1,
		Content: makeTestImage(t, 32, 32, encodePNG),
	})
	assertAppError(t, err, "VALIDATION_ERROR")
}
