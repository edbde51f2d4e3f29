package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tubesift/tubesift/pkg/interfaces"
	"github.com/tubesift/tubesift/pkg/models"
)

// SeedDefaultPresets creates the stock presets when the preset table is
// empty. Exactly one of them is the default.
func (s *Store) SeedDefaultPresets(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&PresetModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, preset := range stockPresets(now) {
		model := &PresetModel{}
		if err := model.FromDomain(preset); err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
	}

	s.logger.Info("stock presets created", interfaces.Int("count", len(stockPresets(now))))
	return nil
}

func stockPresets(now time.Time) []*models.Preset {
	minDuration := int64(600)
	maxDuration := int64(60)
	minViews := int64(10000)

	return []*models.Preset{
		{
			ID:                uuid.New(),
			Name:              "All content",
			Description:       "Everything in the store, no constraints. Quick overview export.",
			Criteria:          models.Criteria{},
			DefaultModel:      "gpt-3.5-turbo",
			DefaultImageModel: "stable-diffusion",
			ExportFormat:      models.FormatJSON,
			UITemplate:        "basic",
			IsDefault:         true,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:          uuid.New(),
			Name:        "Popular long-form videos",
			Description: "Videos over ten minutes with significant viewership.",
			Criteria: models.Criteria{
				ContentKind: models.KindVideo,
				DurationMin: &minDuration,
				ViewsMin:    &minViews,
			},
			DefaultModel:      "claude-3-sonnet",
			DefaultImageModel: "stable-diffusion",
			ExportFormat:      models.FormatMarkdown,
			UITemplate:        "detailed",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:          uuid.New(),
			Name:        "Short clips",
			Description: "Videos up to one minute, shorts and teasers.",
			Criteria: models.Criteria{
				ContentKind: models.KindVideo,
				DurationMax: &maxDuration,
			},
			DefaultModel:      "gpt-4",
			DefaultImageModel: "midjourney-api",
			ExportFormat:      models.FormatCSV,
			UITemplate:        "advanced",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
}
