package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tubesift/tubesift/pkg/models"
)

// Grouping partitions a result set before rendering.
type Grouping string

const (
	GroupNone       Grouping = "none"
	GroupByChannel  Grouping = "by_channel"
	GroupByPlaylist Grouping = "by_playlist_membership"
)

// TextStyle selects a plain-text layout.
type TextStyle string

const (
	StyleSimple   TextStyle = "simple"
	StyleDetailed TextStyle = "detailed"
	StyleCompact  TextStyle = "compact"
)

// group is one rendered partition: key, human label and members in
// input order.
type group struct {
	Key     string
	Label   string
	Records []*models.MediaRecord
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Renderer converts filtered result sets into textual output. It is
// stateless and safe for concurrent use.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render produces markdown: a document header, grouping headers and one
// templated block per record. An empty template selects the built-in
// template for each record's kind. Unknown placeholders in a custom
// template render as empty strings so user-edited templates degrade
// instead of aborting the export.
func (r *Renderer) Render(records []*models.MediaRecord, grouping Grouping, template string) string {
	var b strings.Builder

	b.WriteString("# Export\n\n")
	fmt.Fprintf(&b, "**Date:** %s\n", r.now().Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "**Items:** %d\n\n", len(records))
	b.WriteString("---\n\n")

	groups := partition(records, grouping)
	index := 0
	for _, g := range groups {
		if grouping != GroupNone {
			fmt.Fprintf(&b, "## %s\n\n", g.Label)
		}
		for _, rec := range g.Records {
			index++
			title := rec.Title
			if title == "" {
				title = "Untitled"
			}
			if grouping != GroupNone {
				fmt.Fprintf(&b, "### %d. %s\n\n", index, title)
			} else {
				fmt.Fprintf(&b, "## %d. %s\n\n", index, title)
			}
			tmpl := template
			if tmpl == "" {
				tmpl = DefaultTemplate(rec.Kind)
			}
			b.WriteString(strings.TrimSpace(interpolate(tmpl, rec)))
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

// RenderText produces plain text with a banner header and per-record
// blocks in the chosen style.
func (r *Renderer) RenderText(records []*models.MediaRecord, grouping Grouping, style TextStyle) string {
	var b strings.Builder

	b.WriteString("EXPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Date: %s\n", r.now().Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "Items: %d\n\n", len(records))

	index := 0
	for _, g := range partition(records, grouping) {
		if grouping != GroupNone {
			fmt.Fprintf(&b, "%s\n%s\n", g.Label, strings.Repeat("=", len(g.Label)))
		}
		for _, rec := range g.Records {
			index++
			title := rec.Title
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintf(&b, "%d. %s\n", index, title)
			b.WriteString(strings.Repeat("-", 40) + "\n")
			r.writeTextBlock(&b, rec, style)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (r *Renderer) writeTextBlock(b *strings.Builder, rec *models.MediaRecord, style TextStyle) {
	switch style {
	case StyleSimple:
		fmt.Fprintf(b, "URL: %s\n", recordURL(rec))
		fmt.Fprintf(b, "Channel: %s\n", rec.ChannelTitle)
	case StyleCompact:
		views, _ := rec.ViewCount()
		fmt.Fprintf(b, "%s | %s views\n", rec.ChannelTitle, formatCount(views))
	default: // detailed
		fmt.Fprintf(b, "ID: %s\n", rec.ID)
		fmt.Fprintf(b, "Channel: %s\n", rec.ChannelTitle)
		switch {
		case rec.Video != nil:
			fmt.Fprintf(b, "Duration: %s\n", formatDuration(rec.Video.DurationSeconds))
			fmt.Fprintf(b, "Views: %s\n", formatCount(rec.Video.ViewCount))
			fmt.Fprintf(b, "Likes: %s\n", formatCount(rec.Video.LikeCount))
		case rec.Channel != nil:
			fmt.Fprintf(b, "Subscribers: %s\n", formatCount(rec.Channel.SubscriberCount))
			fmt.Fprintf(b, "Videos: %s\n", formatCount(rec.Channel.VideoCount))
			fmt.Fprintf(b, "Total views: %s\n", formatCount(rec.Channel.ViewCount))
			fmt.Fprintf(b, "Country: %s\n", rec.Channel.Country)
		case rec.Playlist != nil:
			fmt.Fprintf(b, "Items: %s\n", formatCount(rec.Playlist.ItemCount))
		}
		if rec.PublishedAt != nil {
			fmt.Fprintf(b, "Published: %s\n", rec.PublishedAt.Format("02/01/2006"))
		}
		if rec.Description != "" {
			fmt.Fprintf(b, "Description: %s\n", excerpt(rec.Description, 200))
		}
	}
}

// partition splits records into groups keyed by the grouping mode,
// preserving first-seen key order and in-group input order. Keys are
// never sorted.
func partition(records []*models.MediaRecord, grouping Grouping) []group {
	if grouping == GroupNone || grouping == "" {
		return []group{{Records: records}}
	}

	var ordered []group
	byKey := make(map[string]int)

	for _, rec := range records {
		key, label := groupKey(rec, grouping)
		idx, seen := byKey[key]
		if !seen {
			ordered = append(ordered, group{Key: key, Label: label})
			idx = len(ordered) - 1
			byKey[key] = idx
		}
		ordered[idx].Records = append(ordered[idx].Records, rec)
	}

	return ordered
}

func groupKey(rec *models.MediaRecord, grouping Grouping) (key, label string) {
	switch grouping {
	case GroupByChannel:
		key = rec.ChannelID
		label = rec.ChannelTitle
		if label == "" {
			label = key
		}
		if key == "" {
			label = "Unknown channel"
		}
	case GroupByPlaylist:
		if rec.Video != nil {
			key = rec.Video.PlaylistID
		}
		if key == "" {
			label = "Ungrouped"
		} else {
			label = "Playlist " + key
		}
	}
	return key, label
}

// DefaultTemplate returns the built-in markdown template for a kind.
func DefaultTemplate(kind models.Kind) string {
	switch kind {
	case models.KindChannel:
		return `**Channel ID:** {id}
**Subscribers:** {subscribers}
**Videos:** {videos}
**Total views:** {views}
**Country:** {country}
**Created:** {published}
**URL:** {url}

**Description:**
{description}`
	case models.KindPlaylist:
		return `**Channel:** {channel}
**Items:** {items}
**Created:** {published}
**URL:** {url}

**Description:**
{description}`
	default:
		return `**Channel:** {channel}
**Duration:** {duration}
**Views:** {views}
**Likes:** {likes}
**Published:** {published}
**URL:** {url}

**Description:**
{description}`
	}
}

// interpolate substitutes {name} placeholders with record values.
// Unknown names resolve to the empty string.
func interpolate(template string, rec *models.MediaRecord) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		return placeholderValue(rec, name)
	})
}

func placeholderValue(rec *models.MediaRecord, name string) string {
	switch name {
	case "id":
		return rec.ID
	case "title":
		return rec.Title
	case "channel":
		return rec.ChannelTitle
	case "channel_id":
		return rec.ChannelID
	case "description":
		return rec.Description
	case "description_excerpt":
		return excerpt(rec.Description, 200)
	case "thumbnail":
		return rec.ThumbnailURL
	case "url":
		return recordURL(rec)
	case "published":
		if rec.PublishedAt == nil {
			return ""
		}
		return rec.PublishedAt.Format("02/01/2006")
	case "duration":
		if rec.Video == nil {
			return ""
		}
		return formatDuration(rec.Video.DurationSeconds)
	case "views":
		if views, ok := rec.ViewCount(); ok {
			return formatCount(views)
		}
		return ""
	case "likes":
		if rec.Video == nil {
			return ""
		}
		return formatCount(rec.Video.LikeCount)
	case "comments":
		if rec.Video == nil {
			return ""
		}
		return formatCount(rec.Video.CommentCount)
	case "subscribers":
		if rec.Channel == nil {
			return ""
		}
		return formatCount(rec.Channel.SubscriberCount)
	case "videos":
		if rec.Channel == nil {
			return ""
		}
		return formatCount(rec.Channel.VideoCount)
	case "items":
		if rec.Playlist == nil {
			return ""
		}
		return formatCount(rec.Playlist.ItemCount)
	case "country":
		if rec.Channel == nil {
			return ""
		}
		return rec.Channel.Country
	case "tags":
		return strings.Join(rec.Tags(), ", ")
	}
	return ""
}

func recordURL(rec *models.MediaRecord) string {
	switch rec.Kind {
	case models.KindVideo:
		return "https://youtube.com/watch?v=" + rec.ID
	case models.KindChannel:
		return "https://youtube.com/channel/" + rec.ID
	case models.KindPlaylist:
		return "https://youtube.com/playlist?list=" + rec.ID
	}
	return ""
}

// formatCount renders a count with thousands separators.
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// formatDuration renders seconds as H:MM:SS, or MM:SS under one hour.
func formatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
