package project

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/piwi3910/palletpack/internal/model"
)

// DefaultTemplatePath returns ~/.palletpack/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if err := readJSON(path, &store); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.ShapeTemplate{}
	}
	return store, nil
}
