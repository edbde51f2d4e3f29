package models

import (
	"time"
)

// Kind represents the kind of media content.
type Kind string

const (
	KindVideo    Kind = "video"
	KindChannel  Kind = "channel"
	KindPlaylist Kind = "playlist"
	// KindAny matches every kind; only meaningful inside filter criteria.
	KindAny Kind = "any"
)

// Valid reports whether k names a storable record kind.
func (k Kind) Valid() bool {
	switch k {
	case KindVideo, KindChannel, KindPlaylist:
		return true
	}
	return false
}

// MediaRecord is a normalized media entity. The common header is always
// populated; exactly one of Video, Channel or Playlist is non-nil and
// matches Kind. Criteria that do not apply to a record's kind are
// ignored by the filter engine via this tag.
type MediaRecord struct {
	ID           string     `json:"id"`
	Kind         Kind       `json:"kind"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ChannelID    string     `json:"channel_id,omitempty"`
	ChannelTitle string     `json:"channel_title,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`

	Video    *VideoDetails    `json:"video,omitempty"`
	Channel  *ChannelDetails  `json:"channel,omitempty"`
	Playlist *PlaylistDetails `json:"playlist,omitempty"`
}

// VideoDetails holds video-only attributes.
type VideoDetails struct {
	DurationSeconds int64    `json:"duration_seconds"`
	ViewCount       int64    `json:"view_count"`
	LikeCount       int64    `json:"like_count"`
	CommentCount    int64    `json:"comment_count"`
	Tags            []string `json:"tags,omitempty"`
	CategoryID      string   `json:"category_id,omitempty"`
	Language        string   `json:"language,omitempty"`
	Definition      string   `json:"definition,omitempty"`
	CaptionAvailable bool    `json:"caption_available,omitempty"`
	PrivacyStatus   string   `json:"privacy_status,omitempty"`
	LiveBroadcast   string   `json:"live_broadcast,omitempty"`
	// PlaylistID is the playlist this video was collected from, if any.
	PlaylistID string `json:"playlist_id,omitempty"`
}

// ChannelDetails holds channel-only attributes.
type ChannelDetails struct {
	SubscriberCount int64  `json:"subscriber_count"`
	VideoCount      int64  `json:"video_count"`
	ViewCount       int64  `json:"view_count"`
	Country         string `json:"country,omitempty"`
}

// PlaylistDetails holds playlist-only attributes.
type PlaylistDetails struct {
	ItemCount int64  `json:"item_count"`
	ChannelID string `json:"channel_id,omitempty"`
}

// ViewCount returns the record's view count, with ok=false for kinds
// that do not carry one.
func (r *MediaRecord) ViewCount() (int64, bool) {
	switch {
	case r.Video != nil:
		return r.Video.ViewCount, true
	case r.Channel != nil:
		return r.Channel.ViewCount, true
	}
	return 0, false
}

// Tags returns the record's keyword list, empty for kinds without one.
func (r *MediaRecord) Tags() []string {
	if r.Video != nil {
		return r.Video.Tags
	}
	return nil
}
