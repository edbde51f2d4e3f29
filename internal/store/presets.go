package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/tubesift/tubesift/pkg/errors"
	"github.com/tubesift/tubesift/pkg/models"
)

// GetPreset retrieves a preset by name.
func (s *Store) GetPreset(ctx context.Context, name string) (*models.Preset, error) {
	var model PresetModel
	result := s.db.WithContext(ctx).First(&model, "name = ?", name)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundName(name, "preset not found")
		}
		return nil, result.Error
	}
	return model.ToDomain()
}

// PutPreset inserts or replaces a preset row.
func (s *Store) PutPreset(ctx context.Context, preset *models.Preset) error {
	model := &PresetModel{}
	if err := model.FromDomain(preset); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(model).Error
}

// DeletePreset removes a preset by name.
func (s *Store) DeletePreset(ctx context.Context, name string) error {
	result := s.db.WithContext(ctx).Delete(&PresetModel{}, "name = ?", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundName(name, "preset not found")
	}
	return nil
}

// ListPresets returns all presets, default first, then by name.
func (s *Store) ListPresets(ctx context.Context) ([]*models.Preset, error) {
	var rows []PresetModel
	if err := s.db.WithContext(ctx).Order("is_default DESC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	presets := make([]*models.Preset, len(rows))
	for i := range rows {
		preset, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		presets[i] = preset
	}
	return presets, nil
}

// ClearDefaults drops the default flag from every preset. Callers
// combine it with PutPreset inside WithTx to move the flag atomically.
func (s *Store) ClearDefaults(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Model(&PresetModel{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}
