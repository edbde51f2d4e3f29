package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tubesift/tubesift/internal/store"
	"github.com/tubesift/tubesift/pkg/errors"
	"github.com/tubesift/tubesift/pkg/interfaces"
	"github.com/tubesift/tubesift/pkg/models"
)

// Request describes one export: the filtered records, the target
// format and destination, and optional preset/rendering options. The
// snapshot format ignores Records entirely.
type Request struct {
	Records     []*models.MediaRecord
	Format      models.ExportFormat
	Destination string
	Preset      *models.Preset
	Grouping    Grouping
	Template    string
	TextStyle   TextStyle
	// Kind fixes the tabular column set; inferred from the first
	// record when empty.
	Kind models.Kind
}

// envelope is the structured-document export shape.
type envelope struct {
	ExportInfo exportInfo            `json:"export_info"`
	Data       []*models.MediaRecord `json:"data"`
}

type exportInfo struct {
	Timestamp  time.Time `json:"timestamp"`
	TotalItems int       `json:"total_items"`
	Format     string    `json:"format"`
}

// Manager orchestrates exports: it serializes the result set, writes
// the artifact atomically and appends one history record per success.
type Manager struct {
	store    *store.Store
	renderer *Renderer
	logger   interfaces.Logger
}

// NewManager creates an export manager.
func NewManager(s *store.Store, renderer *Renderer, logger interfaces.Logger) *Manager {
	return &Manager{store: s, renderer: renderer, logger: logger}
}

// Export writes one artifact and appends its history record. On any
// failure no partial artifact is left at the destination and no record
// is appended. Empty result sets are valid and produce zero-item
// artifacts.
func (m *Manager) Export(ctx context.Context, req Request) (*models.ExportRecord, error) {
	format := req.Format
	if format == "" && req.Preset != nil {
		format = req.Preset.ExportFormat
	}

	itemCount := len(req.Records)
	var err error

	switch format {
	case models.FormatJSON:
		err = m.writeJSON(req)
	case models.FormatMarkdown:
		err = m.writeAtomic(req.Destination, []byte(m.renderer.Render(req.Records, req.Grouping, req.Template)))
	case models.FormatText:
		err = m.writeAtomic(req.Destination, []byte(m.renderer.RenderText(req.Records, req.Grouping, req.TextStyle)))
	case models.FormatCSV:
		itemCount, err = m.writeCSV(req)
	case models.FormatSnapshot:
		itemCount = 0
		err = m.writeSnapshot(ctx, req.Destination)
	default:
		return nil, errors.Export(errors.CauseUnsupportedFormat,
			"unsupported export format "+string(format), nil)
	}
	if err != nil {
		m.logger.Error("export failed",
			interfaces.String("format", string(format)),
			interfaces.String("destination", req.Destination),
			interfaces.Error(err))
		return nil, err
	}

	record := &models.ExportRecord{
		ID:         uuid.New(),
		Format:     format,
		OutputPath: req.Destination,
		ItemCount:  itemCount,
		CreatedAt:  time.Now().UTC(),
	}
	if req.Preset != nil {
		name := req.Preset.Name
		record.PresetName = &name
	}

	if err := m.store.AppendExportRecord(ctx, record); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal, "record export history", err)
	}

	m.logger.Info("export complete",
		interfaces.String("format", string(format)),
		interfaces.String("destination", req.Destination),
		interfaces.Int("items", itemCount))

	return record, nil
}

// History lists past exports, newest first.
func (m *Manager) History(ctx context.Context, limit int) ([]*models.ExportRecord, error) {
	return m.store.ListExportRecords(ctx, limit)
}

func (m *Manager) writeJSON(req Request) error {
	doc := envelope{
		ExportInfo: exportInfo{
			Timestamp:  time.Now().UTC(),
			TotalItems: len(req.Records),
			Format:     string(models.FormatJSON),
		},
		Data: req.Records,
	}
	if doc.Data == nil {
		doc.Data = []*models.MediaRecord{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Export(errors.CauseIOFailure, "encode export document", err)
	}
	return m.writeAtomic(req.Destination, append(data, '\n'))
}

func (m *Manager) writeCSV(req Request) (int, error) {
	kind := req.Kind
	if kind == "" && len(req.Records) > 0 {
		kind = req.Records[0].Kind
	}
	if kind == "" {
		kind = models.KindVideo
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns(kind)); err != nil {
		return 0, errors.Export(errors.CauseIOFailure, "write csv header", err)
	}

	rows := 0
	for _, rec := range req.Records {
		if rec.Kind != kind {
			continue
		}
		if err := w.Write(csvRow(kind, rec)); err != nil {
			return 0, errors.Export(errors.CauseIOFailure, "write csv row", err)
		}
		rows++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, errors.Export(errors.CauseIOFailure, "flush csv", err)
	}

	if err := m.writeAtomic(req.Destination, buf.Bytes()); err != nil {
		return 0, err
	}
	return rows, nil
}

// writeSnapshot copies the full persisted store, independent of any
// filtered set.
func (m *Manager) writeSnapshot(ctx context.Context, destination string) error {
	dir := filepath.Dir(destination)
	tmp := filepath.Join(dir, ".snapshot-"+uuid.NewString()+".tmp")

	// VACUUM INTO refuses to overwrite, so target a fresh temp path
	// and rename over the destination on success.
	if err := m.store.SnapshotTo(ctx, tmp); err != nil {
		os.Remove(tmp)
		return errors.Export(errors.CauseIOFailure, "snapshot store", err)
	}
	if err := os.Rename(tmp, destination); err != nil {
		os.Remove(tmp)
		return errors.Export(errors.CauseIOFailure, "move snapshot into place", err)
	}
	return nil
}

// writeAtomic writes content to a temp file in the destination
// directory and renames it into place, so an interrupted write never
// leaves a half-written artifact at the destination path.
func (m *Manager) writeAtomic(destination string, content []byte) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Export(errors.CauseIOFailure, "create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return errors.Export(errors.CauseIOFailure, "create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Export(errors.CauseIOFailure, "write artifact", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Export(errors.CauseIOFailure, "sync artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Export(errors.CauseIOFailure, "close artifact", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return errors.Export(errors.CauseIOFailure, "set artifact permissions", err)
	}
	if err := os.Rename(tmpName, destination); err != nil {
		os.Remove(tmpName)
		return errors.Export(errors.CauseIOFailure, "move artifact into place", err)
	}
	return nil
}

// csvColumns returns the fixed column set per kind.
func csvColumns(kind models.Kind) []string {
	switch kind {
	case models.KindChannel:
		return []string{"channel_id", "title", "subscriber_count", "video_count", "view_count", "published_at", "country"}
	case models.KindPlaylist:
		return []string{"playlist_id", "title", "channel_title", "item_count", "published_at"}
	default:
		return []string{"video_id", "title", "channel_title", "duration", "view_count", "like_count", "comment_count", "published_at", "language"}
	}
}

func csvRow(kind models.Kind, rec *models.MediaRecord) []string {
	published := ""
	if rec.PublishedAt != nil {
		published = rec.PublishedAt.UTC().Format(time.RFC3339)
	}

	switch kind {
	case models.KindChannel:
		c := rec.Channel
		if c == nil {
			c = &models.ChannelDetails{}
		}
		return []string{
			rec.ID,
			rec.Title,
			strconv.FormatInt(c.SubscriberCount, 10),
			strconv.FormatInt(c.VideoCount, 10),
			strconv.FormatInt(c.ViewCount, 10),
			published,
			c.Country,
		}
	case models.KindPlaylist:
		p := rec.Playlist
		if p == nil {
			p = &models.PlaylistDetails{}
		}
		return []string{
			rec.ID,
			rec.Title,
			rec.ChannelTitle,
			strconv.FormatInt(p.ItemCount, 10),
			published,
		}
	default:
		v := rec.Video
		if v == nil {
			v = &models.VideoDetails{}
		}
		return []string{
			rec.ID,
			rec.Title,
			rec.ChannelTitle,
			strconv.FormatInt(v.DurationSeconds, 10),
			strconv.FormatInt(v.ViewCount, 10),
			strconv.FormatInt(v.LikeCount, 10),
			strconv.FormatInt(v.CommentCount, 10),
			published,
			v.Language,
		}
	}
}
