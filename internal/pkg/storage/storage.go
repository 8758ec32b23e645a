package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/antojadoapp/antojado/internal/pkg/env"
)

// Layout on disk:
//
//	<MEDIA_ROOT>/businesses/<businessID>/<uuid>.<ext>
//	<MEDIA_ROOT>/businesses/<businessID>/thumbs/<uuid>.<ext>
//
// The public route /uploads/* serves MEDIA_ROOT directly, so the relative
// part of these paths doubles as the URL path.
type Manager struct {
	root string
}

func NewManager() *Manager {
	return &Manager{root: env.GetEnv("MEDIA_ROOT", "./uploads")}
}

// Root returns the media root directory that should be mounted as /uploads.
func (m *Manager) Root() string {
	return m.root
}

func (m *Manager) BusinessDir(businessID uint) string {
	return filepath.Join(m.root, "businesses", fmt.Sprintf("%d", businessID))
}

func (m *Manager) OriginalPath(businessID uint, fileName string) string {
	return filepath.Join(m.BusinessDir(businessID), fileName)
}

func (m *Manager) ThumbnailPath(businessID uint, fileName string) string {
	return filepath.Join(m.BusinessDir(businessID), "thumbs", fileName)
}

// OriginalURL returns the public URL path for an original image.
func (m *Manager) OriginalURL(businessID uint, fileName string) string {
	return fmt.Sprintf("/uploads/businesses/%d/%s", businessID, fileName)
}

func (m *Manager) ThumbnailURL(businessID uint, fileName string) string {
	return fmt.Sprintf("/uploads/businesses/%d/thumbs/%s", businessID, fileName)
}

// SaveUpload stores a multipart upload under the business directory and
// returns the absolute path of the stored file.
func (m *Manager) SaveUpload(file *multipart.FileHeader, businessID uint, fileName string) (string, error) {
	dir := m.BusinessDir(businessID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(dir, fileName)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write %s: %w", dstPath, err)
	}

	return dstPath, nil
}

// Remove deletes the original and, if present, the thumbnail of an image.
// Missing files are not an error so deletes stay idempotent.
func (m *Manager) Remove(businessID uint, fileName string) error {
	if err := os.Remove(m.OriginalPath(businessID, fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(m.ThumbnailPath(businessID, fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SafeFileName builds the stored file name from an image UUID and the
// original upload name, keeping only the lowercased extension.
func SafeFileName(uuid, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid + ext
}
