package docsmith

import (
	"context"
	"time"
)

// DefaultProjectType is used when a project is created without an explicit type.
const DefaultProjectType = "documentation"

// MaxCommandPatterns bounds Interactions.CommandPatterns.
const MaxCommandPatterns = 20

// ProjectContext is the long-lived project document stored in context.json.
type ProjectContext struct {
	Project      ProjectInfo      `json:"project"`
	Architecture Architecture     `json:"architecture"`
	Content      ContentInventory `json:"content"`
	Interactions Interactions     `json:"interactions"`
}

// ProjectInfo holds project metadata.
type ProjectInfo struct {
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	Status        string    `json:"status"`
}

// Architecture records the chosen site structure.
type Architecture struct {
	Theme        *string           `json:"theme"`
	ContentTypes []string          `json:"contentTypes"`
	Features     []string          `json:"features"`
	Colors       map[string]string `json:"colors"`
}

// ContentInventory tracks known pages and generated files.
type ContentInventory struct {
	Pages             []string             `json:"pages"`
	GeneratedFiles    map[string]time.Time `json:"generatedFiles"`
	Checksums         map[string]string    `json:"checksums,omitempty"`
	LastContentUpdate *time.Time           `json:"lastContentUpdate"`
}

// Interactions holds aggregate usage counters.
type Interactions struct {
	TotalCommands   int               `json:"totalCommands"`
	TotalSessions   int               `json:"totalSessions"`
	CommandPatterns []string          `json:"commandPatterns"`
	Preferences     map[string]string `json:"preferences"`
}

// NewProjectContext returns the default, empty project document.
func NewProjectContext() *ProjectContext {
	return &ProjectContext{
		Project: ProjectInfo{
			Type:   DefaultProjectType,
			Status: "uninitialized",
		},
		Architecture: Architecture{
			ContentTypes: []string{},
			Features:     []string{},
			Colors:       map[string]string{},
		},
		Content: ContentInventory{
			Pages:          []string{},
			GeneratedFiles: map[string]time.Time{},
			Checksums:      map[string]string{},
		},
		Interactions: Interactions{
			CommandPatterns: []string{},
			Preferences:     map[string]string{},
		},
	}
}

// Validate returns an error if the project contains invalid fields.
func (c *ProjectContext) Validate() error {
	if c.Project.Name == "" {
		return Errorf(EINVALID, "project name required")
	}
	return nil
}

// Normalize fills nil collections so documents decoded from older or
// hand-edited files behave like NewProjectContext.
func (c *ProjectContext) Normalize() {
	if c.Project.Type == "" {
		c.Project.Type = DefaultProjectType
	}
	if c.Architecture.ContentTypes == nil {
		c.Architecture.ContentTypes = []string{}
	}
	if c.Architecture.Features == nil {
		c.Architecture.Features = []string{}
	}
	if c.Architecture.Colors == nil {
		c.Architecture.Colors = map[string]string{}
	}
	if c.Content.Pages == nil {
		c.Content.Pages = []string{}
	}
	if c.Content.GeneratedFiles == nil {
		c.Content.GeneratedFiles = map[string]time.Time{}
	}
	if c.Content.Checksums == nil {
		c.Content.Checksums = map[string]string{}
	}
	if c.Interactions.CommandPatterns == nil {
		c.Interactions.CommandPatterns = []string{}
	}
	if c.Interactions.Preferences == nil {
		c.Interactions.Preferences = map[string]string{}
	}
}

// RecordCommand bumps the command counter and appends a "prev>cur" sequence
// pattern. prev is empty for the first command of a session.
func (c *ProjectContext) RecordCommand(prev, command string) {
	c.Interactions.TotalCommands++
	if prev == "" {
		return
	}
	c.Interactions.CommandPatterns = append(c.Interactions.CommandPatterns, prev+">"+command)
	if n := len(c.Interactions.CommandPatterns); n > MaxCommandPatterns {
		c.Interactions.CommandPatterns = c.Interactions.CommandPatterns[n-MaxCommandPatterns:]
	}
}

// MarkGenerated records that a content file was written at t.
func (c *ProjectContext) MarkGenerated(path string, t time.Time) {
	if c.Content.GeneratedFiles == nil {
		c.Content.GeneratedFiles = map[string]time.Time{}
	}
	c.Content.GeneratedFiles[path] = t
	c.Content.LastContentUpdate = &t
}

// ThemeName returns the chosen theme or the empty string.
func (c *ProjectContext) ThemeName() string {
	if c.Architecture.Theme == nil {
		return ""
	}
	return *c.Architecture.Theme
}

// ContextService persists the project document.
type ContextService interface {
	// InitContext writes a brand-new project document.
	// Returns ECONFLICT if a readable project already exists.
	InitContext(ctx context.Context, pc *ProjectContext) error

	// LoadContext reads the project document.
	// Returns ENOTFOUND if no project exists. A document that cannot be
	// parsed is recovered from its newest readable backup, or replaced by
	// defaults when there is none.
	LoadContext(ctx context.Context) (*ProjectContext, error)

	// SaveContext overwrites the project document, stamping LastUpdatedAt.
	// Returns EDEGRADED when the document was saved without an atomic rename.
	SaveContext(ctx context.Context, pc *ProjectContext) error
}
