package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tubesift/tubesift/internal/store"
	"github.com/tubesift/tubesift/pkg/errors"
	"github.com/tubesift/tubesift/pkg/logger"
	"github.com/tubesift/tubesift/pkg/models"
	"github.com/tubesift/tubesift/test/testutil"
)

type ExportManagerTestSuite struct {
	suite.Suite

	ctx     context.Context
	store   *store.Store
	manager *Manager
	dir     string
}

func (s *ExportManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewTestStore(s.T())
	s.manager = NewManager(s.store, newFixedRenderer(), logger.NewNoop())
	s.dir = s.T().TempDir()
}

func (s *ExportManagerTestSuite) TestJSONRoundTrip() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("v1", "Go Tutorial", 400, 1000),
		testutil.CreateTestVideo("v2", "Go Deep Dive", 900, 2500),
	}
	dest := filepath.Join(s.dir, "out.json")

	record, err := s.manager.Export(s.ctx, Request{
		Records:     records,
		Format:      models.FormatJSON,
		Destination: dest,
	})
	s.Require().NoError(err)
	s.Equal(2, record.ItemCount)

	data, err := os.ReadFile(dest)
	s.Require().NoError(err)

	var doc envelope
	s.Require().NoError(json.Unmarshal(data, &doc))
	s.Equal(2, doc.ExportInfo.TotalItems)
	s.Require().Len(doc.Data, 2)

	s.Equal("v1", doc.Data[0].ID)
	s.Equal(models.KindVideo, doc.Data[0].Kind)
	s.Equal("Go Tutorial", doc.Data[0].Title)
	s.Require().NotNil(doc.Data[0].Video)
	s.Equal(int64(400), doc.Data[0].Video.DurationSeconds)
	s.Equal(int64(1000), doc.Data[0].Video.ViewCount)
	s.Equal(records[1].PublishedAt.UTC(), doc.Data[1].PublishedAt.UTC())
}

func (s *ExportManagerTestSuite) TestCSVQuoting() {
	rec := testutil.CreateTestVideo("v1", `Go, the "simple" language`, 400, 1000)
	dest := filepath.Join(s.dir, "out.csv")

	_, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{rec},
		Format:      models.FormatCSV,
		Destination: dest,
	})
	s.Require().NoError(err)

	f, err := os.Open(dest)
	s.Require().NoError(err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal([]string{"video_id", "title", "channel_title", "duration", "view_count", "like_count", "comment_count", "published_at", "language"}, rows[0])
	// Re-splitting the quoted row yields the original field unchanged.
	s.Equal(`Go, the "simple" language`, rows[1][1])
	s.Equal("400", rows[1][3])
}

func (s *ExportManagerTestSuite) TestCSVEmptyResultSet() {
	dest := filepath.Join(s.dir, "empty.csv")

	record, err := s.manager.Export(s.ctx, Request{
		Records:     nil,
		Format:      models.FormatCSV,
		Destination: dest,
		Kind:        models.KindVideo,
	})
	s.Require().NoError(err)
	s.Equal(0, record.ItemCount)

	data, err := os.ReadFile(dest)
	s.Require().NoError(err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	s.Require().Len(lines, 1)
	s.Contains(lines[0], "video_id")

	history, err := s.manager.History(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(0, history[0].ItemCount)
}

func (s *ExportManagerTestSuite) TestCSVChannelColumns() {
	rec := testutil.CreateTestChannel("c1", "A Channel", 42000)
	dest := filepath.Join(s.dir, "channels.csv")

	record, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{rec},
		Format:      models.FormatCSV,
		Destination: dest,
	})
	s.Require().NoError(err)
	s.Equal(1, record.ItemCount)

	f, err := os.Open(dest)
	s.Require().NoError(err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	s.Require().NoError(err)
	s.Equal([]string{"channel_id", "title", "subscriber_count", "video_count", "view_count", "published_at", "country"}, rows[0])
	s.Equal("42000", rows[1][2])
}

func (s *ExportManagerTestSuite) TestMarkdownExport() {
	dest := filepath.Join(s.dir, "out.md")

	record, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{testutil.CreateTestVideo("v1", "Clip", 65, 100)},
		Format:      models.FormatMarkdown,
		Destination: dest,
	})
	s.Require().NoError(err)
	s.Equal(1, record.ItemCount)

	data, err := os.ReadFile(dest)
	s.Require().NoError(err)
	s.Contains(string(data), "# Export")
	s.Contains(string(data), "## 1. Clip")
}

func (s *ExportManagerTestSuite) TestTextExportUsesPresetBackReference() {
	dest := filepath.Join(s.dir, "out.txt")
	p := testutil.CreateTestPreset("weekly digest", models.Criteria{})

	record, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{testutil.CreateTestVideo("v1", "Clip", 65, 100)},
		Format:      models.FormatText,
		Destination: dest,
		Preset:      p,
		TextStyle:   StyleDetailed,
	})
	s.Require().NoError(err)
	s.Require().NotNil(record.PresetName)
	s.Equal("weekly digest", *record.PresetName)

	history, err := s.manager.History(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Require().NotNil(history[0].PresetName)
	s.Equal("weekly digest", *history[0].PresetName)
}

func (s *ExportManagerTestSuite) TestPresetSuppliesFormat() {
	dest := filepath.Join(s.dir, "preset-format.json")
	p := testutil.CreateTestPreset("json preset", models.Criteria{})

	record, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{testutil.CreateTestVideo("v1", "Clip", 65, 100)},
		Destination: dest,
		Preset:      p,
	})
	s.Require().NoError(err)
	s.Equal(models.FormatJSON, record.Format)
}

func (s *ExportManagerTestSuite) TestUnsupportedFormat() {
	_, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{testutil.CreateTestVideo("v1", "Clip", 65, 100)},
		Format:      "xlsx",
		Destination: filepath.Join(s.dir, "out.xlsx"),
	})
	s.Require().Error(err)
	s.True(errors.IsExport(err))
	s.Equal(errors.CauseUnsupportedFormat, errors.KindOf(err))

	history, err := s.manager.History(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *ExportManagerTestSuite) TestIOFailureLeavesNoArtifactOrHistory() {
	dest := filepath.Join(s.dir, "missing-parent", "sub")
	// Make the parent path a file so directory creation fails.
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "missing-parent"), []byte("x"), 0o644))

	_, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{testutil.CreateTestVideo("v1", "Clip", 65, 100)},
		Format:      models.FormatJSON,
		Destination: filepath.Join(dest, "out.json"),
	})
	s.Require().Error(err)
	s.True(errors.IsExport(err))
	s.Equal(errors.CauseIOFailure, errors.KindOf(err))

	history, err := s.manager.History(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *ExportManagerTestSuite) TestSnapshotIgnoresRecords() {
	s.Require().NoError(s.store.PutRecord(s.ctx, testutil.CreateTestVideo("v1", "Stored", 120, 10)))
	dest := filepath.Join(s.dir, "backup.db")

	record, err := s.manager.Export(s.ctx, Request{
		Records:     nil, // snapshot copies the whole store regardless
		Format:      models.FormatSnapshot,
		Destination: dest,
	})
	s.Require().NoError(err)
	s.Equal(0, record.ItemCount)

	info, err := os.Stat(dest)
	s.Require().NoError(err)
	s.Positive(info.Size())
}

func (s *ExportManagerTestSuite) TestHistoryNewestFirst() {
	for _, name := range []string{"a.json", "b.json"} {
		_, err := s.manager.Export(s.ctx, Request{
			Records:     nil,
			Format:      models.FormatJSON,
			Destination: filepath.Join(s.dir, name),
		})
		s.Require().NoError(err)
		time.Sleep(2 * time.Millisecond)
	}

	history, err := s.manager.History(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Contains(history[0].OutputPath, "b.json")
}

func (s *ExportManagerTestSuite) TestNoTempFilesLeftBehind() {
	_, err := s.manager.Export(s.ctx, Request{
		Records:     []*models.MediaRecord{testutil.CreateTestVideo("v1", "Clip", 65, 100)},
		Format:      models.FormatJSON,
		Destination: filepath.Join(s.dir, "clean.json"),
	})
	s.Require().NoError(err)

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	for _, entry := range entries {
		s.False(strings.HasSuffix(entry.Name(), ".tmp"), "leftover temp file %s", entry.Name())
	}
}

func TestExportManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ExportManagerTestSuite))
}
