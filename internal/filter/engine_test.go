package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tubesift/tubesift/internal/filter"
	"github.com/tubesift/tubesift/pkg/logger"
	"github.com/tubesift/tubesift/pkg/models"
	"github.com/tubesift/tubesift/test/testutil"
)

type EngineTestSuite struct {
	suite.Suite

	engine *filter.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.engine = filter.NewEngine(filter.MatchAny, logger.NewNoop())
}

func (s *EngineTestSuite) TestEmptyCriteriaMatchesEverything() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("v1", "First", 100, 1000),
		testutil.CreateTestChannel("c1", "A Channel", 5000),
		testutil.CreateTestPlaylist("p1", "A Playlist", 12),
	}

	matched, stats := s.engine.Apply(&models.Criteria{}, records)

	s.Require().Len(matched, 3)
	for i := range records {
		s.Equal(records[i].ID, matched[i].ID)
	}
	s.Equal(3, stats.Input)
	s.Equal(3, stats.Matched)
	s.Equal(0, stats.Skipped)
	s.InDelta(100.0, stats.RetentionPct, 0.001)
}

func (s *EngineTestSuite) TestNilCriteriaMatchesEverything() {
	records := []*models.MediaRecord{testutil.CreateTestVideo("v1", "First", 100, 1000)}
	matched, _ := s.engine.Apply(nil, records)
	s.Len(matched, 1)
}

func (s *EngineTestSuite) TestKindGate() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("v1", "Video", 100, 1000),
		testutil.CreateTestChannel("c1", "Channel", 5000),
		testutil.CreateTestPlaylist("p1", "Playlist", 12),
	}

	matched, _ := s.engine.Apply(&models.Criteria{ContentKind: models.KindChannel}, records)
	s.Require().Len(matched, 1)
	s.Equal("c1", matched[0].ID)

	matched, _ = s.engine.Apply(&models.Criteria{ContentKind: models.KindAny}, records)
	s.Len(matched, 3)
}

func (s *EngineTestSuite) TestDurationBounds() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("short", "Short", 30, 100),
		testutil.CreateTestVideo("medium", "Medium", 400, 100),
		testutil.CreateTestVideo("long", "Long", 1500, 100),
	}

	criteria := &models.Criteria{
		DurationMin: testutil.Int64(60),
		DurationMax: testutil.Int64(600),
	}
	s.Require().NoError(criteria.Validate())

	matched, _ := s.engine.Apply(criteria, records)
	s.Require().Len(matched, 1)
	s.Equal("medium", matched[0].ID)
}

func (s *EngineTestSuite) TestClosedIntervalBounds() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("v1", "Exact min", 60, 100),
		testutil.CreateTestVideo("v2", "Exact max", 600, 100),
	}

	criteria := &models.Criteria{
		DurationMin: testutil.Int64(60),
		DurationMax: testutil.Int64(600),
	}

	matched, _ := s.engine.Apply(criteria, records)
	s.Len(matched, 2)
}

func (s *EngineTestSuite) TestNumericCriteriaIgnoredForInapplicableKinds() {
	// A channel has no duration; a duration bound must not reject it.
	records := []*models.MediaRecord{
		testutil.CreateTestChannel("c1", "Channel", 5000),
		testutil.CreateTestVideo("v1", "Too short", 10, 100),
	}

	criteria := &models.Criteria{DurationMin: testutil.Int64(60)}
	matched, _ := s.engine.Apply(criteria, records)

	s.Require().Len(matched, 1)
	s.Equal("c1", matched[0].ID)
}

func (s *EngineTestSuite) TestPopularityBound() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("low", "Low views", 100, 50),
		testutil.CreateTestVideo("high", "High views", 100, 50000),
	}

	matched, _ := s.engine.Apply(&models.Criteria{ViewsMin: testutil.Int64(1000)}, records)
	s.Require().Len(matched, 1)
	s.Equal("high", matched[0].ID)
}

func (s *EngineTestSuite) TestDateBounds() {
	early := testutil.CreateTestVideo("early", "Early", 100, 100)
	early.PublishedAt = testutil.Time(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	late := testutil.CreateTestVideo("late", "Late", 100, 100)
	late.PublishedAt = testutil.Time(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	undated := testutil.CreateTestVideo("undated", "Undated", 100, 100)
	undated.PublishedAt = nil

	criteria := &models.Criteria{
		DateAfter:  testutil.Time(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		DateBefore: testutil.Time(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	matched, _ := s.engine.Apply(criteria, []*models.MediaRecord{early, late, undated})
	s.Require().Len(matched, 1)
	s.Equal("late", matched[0].ID)
}

func (s *EngineTestSuite) TestKeywordIncludeMatchesAnyField() {
	inTitle := testutil.CreateTestVideo("t", "Go Tutorial", 100, 100)
	inDescription := testutil.CreateTestVideo("d", "Something", 100, 100)
	inDescription.Description = "a tutorial about Go"
	inTags := testutil.CreateTestVideo("g", "Other", 100, 100)
	inTags.Video.Tags = []string{"tutorial"}
	noMatch := testutil.CreateTestVideo("n", "Unrelated", 100, 100)
	noMatch.Description = "nothing to see"
	noMatch.Video.Tags = nil

	criteria := &models.Criteria{KeywordsInclude: []string{"tutorial"}}
	matched, _ := s.engine.Apply(criteria, []*models.MediaRecord{inTitle, inDescription, inTags, noMatch})

	s.Require().Len(matched, 3)
	s.Equal([]string{"t", "d", "g"}, []string{matched[0].ID, matched[1].ID, matched[2].ID})
}

func (s *EngineTestSuite) TestKeywordIncludeIsOrAcrossTerms() {
	rec := testutil.CreateTestVideo("v1", "Go Tutorial", 100, 100)

	criteria := &models.Criteria{KeywordsInclude: []string{"rust", "tutorial"}}
	matched, _ := s.engine.Apply(criteria, []*models.MediaRecord{rec})
	s.Len(matched, 1)
}

func (s *EngineTestSuite) TestMatchAllPolicy() {
	engine := filter.NewEngine(filter.MatchAll, logger.NewNoop())
	rec := testutil.CreateTestVideo("v1", "Go Tutorial", 100, 100)

	matched, _ := engine.Apply(&models.Criteria{KeywordsInclude: []string{"go", "tutorial"}}, []*models.MediaRecord{rec})
	s.Len(matched, 1)

	matched, _ = engine.Apply(&models.Criteria{KeywordsInclude: []string{"go", "rust"}}, []*models.MediaRecord{rec})
	s.Empty(matched)
}

func (s *EngineTestSuite) TestExcludeDominatesInclude() {
	rec := testutil.CreateTestVideo("v1", "Advanced Tutorial", 100, 100)

	criteria := &models.Criteria{
		KeywordsInclude: []string{"tutorial"},
		KeywordsExclude: []string{"advanced"},
	}
	s.Require().NoError(criteria.Validate())

	matched, _ := s.engine.Apply(criteria, []*models.MediaRecord{rec})
	s.Empty(matched)
}

func (s *EngineTestSuite) TestChannelIncludeExclude() {
	a := testutil.CreateTestVideo("a", "From A", 100, 100)
	a.ChannelID = "chan-a"
	b := testutil.CreateTestVideo("b", "From B", 100, 100)
	b.ChannelID = "chan-b"

	matched, _ := s.engine.Apply(&models.Criteria{Channels: []string{"chan-a"}}, []*models.MediaRecord{a, b})
	s.Require().Len(matched, 1)
	s.Equal("a", matched[0].ID)

	matched, _ = s.engine.Apply(&models.Criteria{ChannelsExclude: []string{"chan-a"}}, []*models.MediaRecord{a, b})
	s.Require().Len(matched, 1)
	s.Equal("b", matched[0].ID)
}

func (s *EngineTestSuite) TestLanguageGate() {
	en := testutil.CreateTestVideo("en", "English", 100, 100)
	fr := testutil.CreateTestVideo("fr", "French", 100, 100)
	fr.Video.Language = "fr"

	matched, _ := s.engine.Apply(&models.Criteria{Languages: []string{"FR"}}, []*models.MediaRecord{en, fr})
	s.Require().Len(matched, 1)
	s.Equal("fr", matched[0].ID)
}

func (s *EngineTestSuite) TestMalformedRecordsSkippedNotFatal() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("v1", "Good", 100, 100),
		{Kind: models.KindVideo, Title: "No identifier"},
		nil,
	}

	matched, stats := s.engine.Apply(&models.Criteria{}, records)
	s.Len(matched, 1)
	s.Equal(2, stats.Skipped)
}

func (s *EngineTestSuite) TestIdempotence() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("v1", "Go Tutorial", 30, 100),
		testutil.CreateTestVideo("v2", "Go Deep Dive", 400, 100),
		testutil.CreateTestVideo("v3", "Rust Tutorial", 1500, 100),
	}

	criteria := &models.Criteria{
		DurationMin:     testutil.Int64(60),
		KeywordsInclude: []string{"go"},
	}

	once, _ := s.engine.Apply(criteria, records)
	twice, _ := s.engine.Apply(criteria, once)

	s.Require().Equal(len(once), len(twice))
	for i := range once {
		s.Equal(once[i].ID, twice[i].ID)
	}
}

func (s *EngineTestSuite) TestInputNotMutated() {
	records := []*models.MediaRecord{
		testutil.CreateTestVideo("v1", "Keep", 100, 100),
		testutil.CreateTestVideo("v2", "Drop", 10, 100),
	}

	s.engine.Apply(&models.Criteria{DurationMin: testutil.Int64(60)}, records)

	s.Len(records, 2)
	s.Equal("v1", records[0].ID)
	s.Equal("v2", records[1].ID)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
