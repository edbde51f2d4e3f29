package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tubesift/tubesift/pkg/models"
)

// RecordColumns provides the common header shared by all record tables.
type RecordColumns struct {
	ID           string `gorm:"primaryKey"`
	Title        string `gorm:"not null;index"`
	Description  string `gorm:"type:text"`
	PublishedAt  *time.Time
	ChannelID    string `gorm:"index"`
	ChannelTitle string
	ThumbnailURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VideoModel represents a video record in the database.
type VideoModel struct {
	RecordColumns
	DurationSeconds  int64  `gorm:"not null;default:0"`
	ViewCount        int64  `gorm:"not null;default:0"`
	LikeCount        int64  `gorm:"not null;default:0"`
	CommentCount     int64  `gorm:"not null;default:0"`
	Tags             string `gorm:"type:text"` // JSON array
	CategoryID       string
	Language         string
	Definition       string
	CaptionAvailable bool
	PrivacyStatus    string
	LiveBroadcast    string
	PlaylistID       string `gorm:"index"`
}

// ChannelModel represents a channel record in the database.
type ChannelModel struct {
	RecordColumns
	SubscriberCount int64 `gorm:"not null;default:0"`
	VideoCount      int64 `gorm:"not null;default:0"`
	ViewCount       int64 `gorm:"not null;default:0"`
	Country         string
}

// PlaylistModel represents a playlist record in the database.
type PlaylistModel struct {
	RecordColumns
	ItemCount int64 `gorm:"not null;default:0"`
}

// PresetModel represents a persisted preset.
type PresetModel struct {
	ID                uuid.UUID `gorm:"primaryKey"`
	Name              string    `gorm:"uniqueIndex;not null"`
	Description       string    `gorm:"type:text"`
	Filters           string    `gorm:"type:text"` // criteria JSON document
	DefaultModel      string
	DefaultImageModel string
	ExportFormat      string
	UITemplate        string
	IsDefault         bool      `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ExportRecordModel represents one export history row. Rows are never
// updated after creation.
type ExportRecordModel struct {
	ID         uuid.UUID `gorm:"primaryKey"`
	Format     string    `gorm:"not null"`
	OutputPath string    `gorm:"not null"`
	PresetName *string
	ItemCount  int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"index"`
}

// TableName customizations.
func (VideoModel) TableName() string {
	return "videos"
}

func (ChannelModel) TableName() string {
	return "channels"
}

func (PlaylistModel) TableName() string {
	return "playlists"
}

func (PresetModel) TableName() string {
	return "presets"
}

func (ExportRecordModel) TableName() string {
	return "exports"
}

func (m *RecordColumns) header(kind models.Kind) models.MediaRecord {
	return models.MediaRecord{
		ID:           m.ID,
		Kind:         kind,
		Title:        m.Title,
		Description:  m.Description,
		PublishedAt:  m.PublishedAt,
		ChannelID:    m.ChannelID,
		ChannelTitle: m.ChannelTitle,
		ThumbnailURL: m.ThumbnailURL,
	}
}

func headerColumns(r *models.MediaRecord) RecordColumns {
	return RecordColumns{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		PublishedAt:  r.PublishedAt,
		ChannelID:    r.ChannelID,
		ChannelTitle: r.ChannelTitle,
		ThumbnailURL: r.ThumbnailURL,
	}
}

// ToDomain converts a VideoModel to a domain MediaRecord.
func (m *VideoModel) ToDomain() *models.MediaRecord {
	rec := m.header(models.KindVideo)
	rec.Video = &models.VideoDetails{
		DurationSeconds:  m.DurationSeconds,
		ViewCount:        m.ViewCount,
		LikeCount:        m.LikeCount,
		CommentCount:     m.CommentCount,
		Tags:             decodeTags(m.Tags),
		CategoryID:       m.CategoryID,
		Language:         m.Language,
		Definition:       m.Definition,
		CaptionAvailable: m.CaptionAvailable,
		PrivacyStatus:    m.PrivacyStatus,
		LiveBroadcast:    m.LiveBroadcast,
		PlaylistID:       m.PlaylistID,
	}
	return &rec
}

// FromDomain fills a VideoModel from a domain MediaRecord.
func (m *VideoModel) FromDomain(r *models.MediaRecord) {
	m.RecordColumns = headerColumns(r)
	if r.Video == nil {
		return
	}
	m.DurationSeconds = r.Video.DurationSeconds
	m.ViewCount = r.Video.ViewCount
	m.LikeCount = r.Video.LikeCount
	m.CommentCount = r.Video.CommentCount
	m.Tags = encodeTags(r.Video.Tags)
	m.CategoryID = r.Video.CategoryID
	m.Language = r.Video.Language
	m.Definition = r.Video.Definition
	m.CaptionAvailable = r.Video.CaptionAvailable
	m.PrivacyStatus = r.Video.PrivacyStatus
	m.LiveBroadcast = r.Video.LiveBroadcast
	m.PlaylistID = r.Video.PlaylistID
}

// ToDomain converts a ChannelModel to a domain MediaRecord.
func (m *ChannelModel) ToDomain() *models.MediaRecord {
	rec := m.header(models.KindChannel)
	rec.Channel = &models.ChannelDetails{
		SubscriberCount: m.SubscriberCount,
		VideoCount:      m.VideoCount,
		ViewCount:       m.ViewCount,
		Country:         m.Country,
	}
	return &rec
}

// FromDomain fills a ChannelModel from a domain MediaRecord.
func (m *ChannelModel) FromDomain(r *models.MediaRecord) {
	m.RecordColumns = headerColumns(r)
	if r.Channel == nil {
		return
	}
	m.SubscriberCount = r.Channel.SubscriberCount
	m.VideoCount = r.Channel.VideoCount
	m.ViewCount = r.Channel.ViewCount
	m.Country = r.Channel.Country
}

// ToDomain converts a PlaylistModel to a domain MediaRecord.
func (m *PlaylistModel) ToDomain() *models.MediaRecord {
	rec := m.header(models.KindPlaylist)
	rec.Playlist = &models.PlaylistDetails{
		ItemCount: m.ItemCount,
		ChannelID: m.ChannelID,
	}
	return &rec
}

// FromDomain fills a PlaylistModel from a domain MediaRecord.
func (m *PlaylistModel) FromDomain(r *models.MediaRecord) {
	m.RecordColumns = headerColumns(r)
	if r.Playlist == nil {
		return
	}
	m.ItemCount = r.Playlist.ItemCount
}

// ToDomain converts a PresetModel to a domain Preset. The filters
// document is validated at load time; a row with a malformed document
// is surfaced as an error rather than silently emptied.
func (m *PresetModel) ToDomain() (*models.Preset, error) {
	criteria, err := models.DecodeCriteria(m.Filters)
	if err != nil {
		return nil, err
	}
	return &models.Preset{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Criteria:          *criteria,
		DefaultModel:      m.DefaultModel,
		DefaultImageModel: m.DefaultImageModel,
		ExportFormat:      models.ExportFormat(m.ExportFormat),
		UITemplate:        m.UITemplate,
		IsDefault:         m.IsDefault,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}

// FromDomain fills a PresetModel from a domain Preset.
func (m *PresetModel) FromDomain(p *models.Preset) error {
	filters, err := models.EncodeCriteria(&p.Criteria)
	if err != nil {
		return err
	}
	m.ID = p.ID
	m.Name = p.Name
	m.Description = p.Description
	m.Filters = filters
	m.DefaultModel = p.DefaultModel
	m.DefaultImageModel = p.DefaultImageModel
	m.ExportFormat = string(p.ExportFormat)
	m.UITemplate = p.UITemplate
	m.IsDefault = p.IsDefault
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	return nil
}

// ToDomain converts an ExportRecordModel to a domain ExportRecord.
func (m *ExportRecordModel) ToDomain() *models.ExportRecord {
	return &models.ExportRecord{
		ID:         m.ID,
		Format:     models.ExportFormat(m.Format),
		OutputPath: m.OutputPath,
		PresetName: m.PresetName,
		ItemCount:  m.ItemCount,
		CreatedAt:  m.CreatedAt,
	}
}

func decodeTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil
	}
	return tags
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return ""
	}
	return string(data)
}
