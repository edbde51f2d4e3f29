package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/tubesift/tubesift/pkg/models"
)

// CreateTestVideo creates a video record with sensible defaults.
func CreateTestVideo(id, title string, durationSeconds, viewCount int64) *models.MediaRecord {
	published := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return &models.MediaRecord{
		ID:           id,
		Kind:         models.KindVideo,
		Title:        title,
		Description:  "Test video description",
		PublishedAt:  &published,
		ChannelID:    "chan-1",
		ChannelTitle: "Test Channel",
		ThumbnailURL: "https://i.ytimg.com/vi/" + id + "/default.jpg",
		Video: &models.VideoDetails{
			DurationSeconds: durationSeconds,
			ViewCount:       viewCount,
			LikeCount:       viewCount / 20,
			CommentCount:    viewCount / 100,
			Tags:            []string{"test"},
			Language:        "en",
		},
	}
}

// CreateTestChannel creates a channel record.
func CreateTestChannel(id, title string, subscribers int64) *models.MediaRecord {
	published := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	return &models.MediaRecord{
		ID:          id,
		Kind:        models.KindChannel,
		Title:       title,
		Description: "Test channel description",
		PublishedAt: &published,
		Channel: &models.ChannelDetails{
			SubscriberCount: subscribers,
			VideoCount:      120,
			ViewCount:       subscribers * 40,
			Country:         "US",
		},
	}
}

// CreateTestPlaylist creates a playlist record.
func CreateTestPlaylist(id, title string, itemCount int64) *models.MediaRecord {
	published := time.Date(2023, 1, 10, 8, 30, 0, 0, time.UTC)
	return &models.MediaRecord{
		ID:           id,
		Kind:         models.KindPlaylist,
		Title:        title,
		PublishedAt:  &published,
		ChannelID:    "chan-1",
		ChannelTitle: "Test Channel",
		Playlist: &models.PlaylistDetails{
			ItemCount: itemCount,
			ChannelID: "chan-1",
		},
	}
}

// CreateTestPreset creates a preset holding the given criteria.
func CreateTestPreset(name string, criteria models.Criteria) *models.Preset {
	now := time.Now().UTC()
	return &models.Preset{
		ID:           uuid.New(),
		Name:         name,
		Description:  "Test preset",
		Criteria:     criteria,
		DefaultModel: "gpt-4",
		ExportFormat: models.FormatJSON,
		UITemplate:   "basic",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Int64 returns a pointer to v, for criteria bounds.
func Int64(v int64) *int64 {
	return &v
}

// Time returns a pointer to t, for criteria date bounds.
func Time(t time.Time) *time.Time {
	return &t
}
