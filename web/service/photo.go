package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedPhotoExtensions = []string{"jpg", "jpeg", "png"}

// IsAllowedPhoto reports whether the file name carries a jpg, jpeg or png extension.
func IsAllowedPhoto(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, allowed := range allowedPhotoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// PhotoStore writes recipe photos into a single directory as <recipe id>_<file name>.
type PhotoStore struct {
	dir string
}

func NewPhotoStore(dir string) *PhotoStore {
	return &PhotoStore{dir: dir}
}

func (p *PhotoStore) Dir() string {
	return p.dir
}

// PathFor returns where the photo of a recipe with the given upload name is kept.
func (p *PhotoStore) PathFor(recipeId int, filename string) string {
	return filepath.Join(p.dir, fmt.Sprintf("%d_%s", recipeId, filepath.Base(filename)))
}

// Save writes the bytes through a temporary file and renames it into place.
func (p *PhotoStore) Save(recipeId int, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", storageError("save photo", err)
	}
	path := p.PathFor(recipeId, filename)
	tmp := filepath.Join(p.dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", storageError("save photo", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", storageError("save photo", err)
	}
	return path, nil
}
