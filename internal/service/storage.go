package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gymflick/internal/models"
)

// ObjectStorage stores media blobs addressed by object path (e.g.
// "postImages/1712345678901.jpg") and serves them through download URLs of
// the form <base>/o/<url-encoded path>?...  Clients persist the full URL, so
// deleting an object starts from the URL, not the path.
type ObjectStorage interface {
	Put(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, objectPath string) error
	DownloadURL(objectPath string) string
}

// ParseObjectPath extracts the object path from a download URL: everything
// after the "/o/" marker, query string stripped, percent-decoded.
func ParseObjectPath(downloadURL string) (string, error) {
	const marker = "/o/"
	idx := strings.Index(downloadURL, marker)
	if idx < 0 {
		return "", models.NewValidationError("Not an object download URL")
	}
	path := downloadURL[idx+len(marker):]
	if q := strings.IndexByte(path, '?'); q >= 0 {
		path = path[:q]
	}
	decoded, err := url.QueryUnescape(path)
	if err != nil {
		return "", models.NewValidationError("Malformed object path in URL")
	}
	if decoded == "" {
		return "", models.NewValidationError("Empty object path in URL")
	}
	return decoded, nil
}

// DiskStorage keeps objects on the local filesystem under a root directory.
type DiskStorage struct {
	root    string
	baseURL string
}

// NewDiskStorage returns a DiskStorage rooted at dir, serving URLs under
// baseURL (no trailing slash).
func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStorage{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// localPath maps an object path onto the root, rejecting traversal.
func (s *DiskStorage) localPath(objectPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(objectPath))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", models.NewValidationError("Invalid object path")
	}
	return filepath.Join(s.root, clean), nil
}

func (s *DiskStorage) Put(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	local, err := s.localPath(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return s.DownloadURL(objectPath), nil
}

func (s *DiskStorage) Delete(ctx context.Context, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	local, err := s.localPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(local); err != nil {
		if os.IsNotExist(err) {
			return models.NewNotFoundError("Object", 0)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (s *DiskStorage) DownloadURL(objectPath string) string {
	return fmt.Sprintf("%s/o/%s?alt=media", s.baseURL, url.QueryEscape(objectPath))
}
