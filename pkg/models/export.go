package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportRecord is one append-only export history entry. PresetName is a
// nullable back-reference that survives deletion of the preset.
type ExportRecord struct {
	ID         uuid.UUID    `json:"id"`
	Format     ExportFormat `json:"format"`
	OutputPath string       `json:"output_path"`
	PresetName *string      `json:"preset_name,omitempty"`
	ItemCount  int          `json:"item_count"`
	CreatedAt  time.Time    `json:"created_at"`
}
