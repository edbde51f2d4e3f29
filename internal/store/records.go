package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/tubesift/tubesift/pkg/errors"
	"github.com/tubesift/tubesift/pkg/models"
)

// PutRecord upserts a media record into the table for its kind. Used
// by ingestion glue; the pipeline itself only reads.
func (s *Store) PutRecord(ctx context.Context, rec *models.MediaRecord) error {
	if rec.ID == "" {
		return errors.Validation(errors.KindUnknownFilterKey, "id", "record identifier must not be empty")
	}

	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}

	switch rec.Kind {
	case models.KindVideo:
		model := &VideoModel{}
		model.FromDomain(rec)
		return s.db.WithContext(ctx).Clauses(upsert).Create(model).Error
	case models.KindChannel:
		model := &ChannelModel{}
		model.FromDomain(rec)
		return s.db.WithContext(ctx).Clauses(upsert).Create(model).Error
	case models.KindPlaylist:
		model := &PlaylistModel{}
		model.FromDomain(rec)
		return s.db.WithContext(ctx).Clauses(upsert).Create(model).Error
	}
	return errors.Validation(errors.KindUnknownFilterKey, "kind", "unknown record kind "+string(rec.Kind))
}

// ListByKind returns all records of one kind in insertion order.
func (s *Store) ListByKind(ctx context.Context, kind models.Kind) ([]*models.MediaRecord, error) {
	switch kind {
	case models.KindVideo:
		var rows []VideoModel
		if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]*models.MediaRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToDomain()
		}
		return records, nil
	case models.KindChannel:
		var rows []ChannelModel
		if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]*models.MediaRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToDomain()
		}
		return records, nil
	case models.KindPlaylist:
		var rows []PlaylistModel
		if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]*models.MediaRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToDomain()
		}
		return records, nil
	}
	return nil, errors.Validation(errors.KindUnknownFilterKey, "kind", "unknown record kind "+string(kind))
}

// ListAll returns every record in the store, videos first, then
// channels, then playlists, each group in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]*models.MediaRecord, error) {
	var all []*models.MediaRecord
	for _, kind := range []models.Kind{models.KindVideo, models.KindChannel, models.KindPlaylist} {
		records, err := s.ListByKind(ctx, kind)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
