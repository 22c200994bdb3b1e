package project

import (
	"fmt"

	"github.com/piwi3910/palletpack/internal/model"
)

// SaveProject writes a project, including its last result, to path.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project from path. Settings missing from the file keep
// their default values.
func LoadProject(path string) (model.Project, error) {
	p := model.NewProject()
	if err := readJSON(path, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to load project: %w", err)
	}
	if p.Shapes == nil {
		p.Shapes = []model.ShapeRequest{}
	}
	return p, nil
}
