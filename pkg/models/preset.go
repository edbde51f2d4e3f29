package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tubesift/tubesift/pkg/errors"
)

// ExportFormat identifies an export artifact format.
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatMarkdown ExportFormat = "markdown"
	FormatText     ExportFormat = "text"
	FormatCSV      ExportFormat = "csv"
	FormatSnapshot ExportFormat = "snapshot"
)

// Preset is a named, persisted criteria plus default generation and
// export settings. Name is the identity; at most one preset carries
// IsDefault at any time.
type Preset struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description,omitempty"`
	Criteria          Criteria     `json:"filters"`
	DefaultModel      string       `json:"default_model,omitempty"`
	DefaultImageModel string       `json:"default_image_model,omitempty"`
	ExportFormat      ExportFormat `json:"export_format,omitempty"`
	UITemplate        string       `json:"ui_template,omitempty"`
	IsDefault         bool         `json:"is_default"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Validate checks the preset invariants, including its criteria.
func (p *Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Validation(errors.KindEmptyPresetName, "name",
			"preset name must not be empty")
	}
	return p.Criteria.Validate()
}
