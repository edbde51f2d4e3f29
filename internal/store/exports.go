package store

import (
	"context"

	"github.com/tubesift/tubesift/pkg/models"
)

// DefaultHistoryLimit bounds export history listings when the caller
// does not ask for a specific limit.
const DefaultHistoryLimit = 50

// AppendExportRecord appends one export history row. Rows are
// append-only and never mutated.
func (s *Store) AppendExportRecord(ctx context.Context, rec *models.ExportRecord) error {
	model := &ExportRecordModel{
		ID:         rec.ID,
		Format:     string(rec.Format),
		OutputPath: rec.OutputPath,
		PresetName: rec.PresetName,
		ItemCount:  rec.ItemCount,
		CreatedAt:  rec.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(model).Error
}

// ListExportRecords returns export history, newest first.
func (s *Store) ListExportRecords(ctx context.Context, limit int) ([]*models.ExportRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var rows []ExportRecordModel
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]*models.ExportRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}
