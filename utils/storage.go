package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Asset subdirectories under the storage root. The same paths are mounted as
// static routes in main.go.
const (
	TutorialCoverDir = "tutorials/covers"
	TutorialVideoDir = "tutorials/videos"
	BlogCoverDir     = "blogs/covers"
)

const (
	MaxCoverSize = 2 * 1024 * 1024
	MaxVideoSize = 50 * 1024 * 1024
)

var (
	ImageContentTypes = []string{"image/jpeg", "image/jpg", "image/png"}
	VideoContentTypes = []string{"video/mp4", "video/mpeg"}
)

// SaveUpload validates size and content type, then stores the file under
// <storageRoot>/<subdir>/<uuid><ext> and returns the generated filename.
func SaveUpload(c *fiber.Ctx, file *multipart.FileHeader, storageRoot, subdir string, maxSize int64, allowedTypes []string) (string, error) {
	if file.Size > maxSize {
		return "", fmt.Errorf("file exceeds the %d byte limit", maxSize)
	}

	contentType := file.Header.Get("Content-Type")
	allowed := false
	for _, t := range allowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("content type %q is not allowed", contentType)
	}

	dir := filepath.Join(storageRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return filename, nil
}

// RemoveAsset deletes a stored file. Missing files are not an error; cleanup
// paths call this after partial failures and the file may never have landed.
func RemoveAsset(storageRoot, subdir, filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(storageRoot, subdir, filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
