package model

import (
	"time"

	"github.com/google/uuid"
)

// ShapeTemplate is a reusable shape list with the settings it is usually
// packed with. It never stores results.
type ShapeTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Shapes      []ShapeRequest `json:"shapes"`
	Settings    PackSettings   `json:"settings"`
}

// NewShapeTemplate creates a template from a copy of the given shape list.
func NewShapeTemplate(name, description string, shapes []ShapeRequest, settings PackSettings) ShapeTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	cp := make([]ShapeRequest, len(shapes))
	copy(cp, shapes)
	return ShapeTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Shapes:      cp,
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template.
func (t ShapeTemplate) ToProject(projectName string) Project {
	shapes := make([]ShapeRequest, len(t.Shapes))
	copy(shapes, t.Shapes)
	return Project{
		Name:     projectName,
		Shapes:   shapes,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of shape templates.
type TemplateStore struct {
	Templates []ShapeTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ShapeTemplate{}}
}

// Put adds a template, replacing any existing one with the same name.
func (ts *TemplateStore) Put(t ShapeTemplate) {
	if existing := ts.FindByName(t.Name); existing != nil {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
		*existing = t
		return
	}
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ShapeTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
