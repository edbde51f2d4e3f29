package filter

import (
	"strings"

	"github.com/tubesift/tubesift/pkg/interfaces"
	"github.com/tubesift/tubesift/pkg/models"
)

// MatchPolicy controls how multiple include keywords combine.
type MatchPolicy string

const (
	// MatchAny passes a record when at least one include term matches.
	MatchAny MatchPolicy = "or"
	// MatchAll requires every include term to match.
	MatchAll MatchPolicy = "and"
)

// Stats reports the outcome of one filter pass. Skipped counts
// malformed records (missing identifier) that were dropped without
// failing the pass.
type Stats struct {
	Input        int
	Matched      int
	Skipped      int
	RetentionPct float64
}

// Engine evaluates criteria against media records.
type Engine struct {
	policy MatchPolicy
	logger interfaces.Logger
}

// NewEngine creates a filter engine. An empty policy defaults to
// MatchAny, the more permissive behavior for discoverability presets.
func NewEngine(policy MatchPolicy, logger interfaces.Logger) *Engine {
	if policy != MatchAll {
		policy = MatchAny
	}
	return &Engine{policy: policy, logger: logger}
}

// Apply evaluates criteria against records and returns the matching
// subset in input order. The input slice is not mutated. The criteria
// must be valid; Apply never fails on a validly constructed criteria.
func (e *Engine) Apply(criteria *models.Criteria, records []*models.MediaRecord) ([]*models.MediaRecord, Stats) {
	stats := Stats{Input: len(records)}
	matched := make([]*models.MediaRecord, 0, len(records))

	for _, rec := range records {
		if rec == nil || rec.ID == "" {
			stats.Skipped++
			continue
		}
		if e.matches(criteria, rec) {
			matched = append(matched, rec)
		}
	}

	stats.Matched = len(matched)
	if stats.Input > 0 {
		stats.RetentionPct = float64(stats.Matched) / float64(stats.Input) * 100
	}

	e.logger.Debug("filter pass complete",
		interfaces.Int("input", stats.Input),
		interfaces.Int("matched", stats.Matched),
		interfaces.Int("skipped", stats.Skipped))

	return matched, stats
}

// matches runs the gate sequence for one record. Gates are ordered
// cheapest first; the kind gate eliminates most of a mixed-kind store
// before any field comparison runs.
func (e *Engine) matches(c *models.Criteria, rec *models.MediaRecord) bool {
	if c == nil {
		return true
	}

	// Kind gate.
	if c.ContentKind != "" && c.ContentKind != models.KindAny && c.ContentKind != rec.Kind {
		return false
	}

	// Numeric-range gates. Criteria not applicable to the record's
	// kind are ignored rather than causing rejection.
	if rec.Video != nil {
		if c.DurationMin != nil && rec.Video.DurationSeconds < *c.DurationMin {
			return false
		}
		if c.DurationMax != nil && rec.Video.DurationSeconds > *c.DurationMax {
			return false
		}
		if c.LikesMin != nil && rec.Video.LikeCount < *c.LikesMin {
			return false
		}
		if c.LikesMax != nil && rec.Video.LikeCount > *c.LikesMax {
			return false
		}
	}
	if c.ViewsMin != nil {
		if views, ok := rec.ViewCount(); ok && views < *c.ViewsMin {
			return false
		}
	}

	// Date-range gate. A record with no published timestamp cannot
	// satisfy a date bound.
	if c.DateAfter != nil || c.DateBefore != nil {
		if rec.PublishedAt == nil {
			return false
		}
		if c.DateAfter != nil && rec.PublishedAt.Before(*c.DateAfter) {
			return false
		}
		if c.DateBefore != nil && rec.PublishedAt.After(*c.DateBefore) {
			return false
		}
	}

	// Language gate (videos only).
	if len(c.Languages) > 0 && rec.Video != nil {
		if !containsFold(c.Languages, rec.Video.Language) {
			return false
		}
	}

	// Channel include/exclude gates.
	if len(c.Channels) > 0 && !contains(c.Channels, rec.ChannelID) {
		return false
	}
	if len(c.ChannelsExclude) > 0 && contains(c.ChannelsExclude, rec.ChannelID) {
		return false
	}

	// Keyword-include gate.
	if len(c.KeywordsInclude) > 0 {
		if !e.keywordsMatch(c.KeywordsInclude, rec) {
			return false
		}
	}

	// Keyword-exclude gate dominates: any match rejects.
	if len(c.KeywordsExclude) > 0 {
		for _, kw := range c.KeywordsExclude {
			if recordContains(rec, kw) {
				return false
			}
		}
	}

	return true
}

func (e *Engine) keywordsMatch(keywords []string, rec *models.MediaRecord) bool {
	for _, kw := range keywords {
		hit := recordContains(rec, kw)
		if hit && e.policy == MatchAny {
			return true
		}
		if !hit && e.policy == MatchAll {
			return false
		}
	}
	return e.policy == MatchAll
}

// recordContains reports a case-insensitive substring match of term
// against the record's title, description or tag list.
func recordContains(rec *models.MediaRecord, term string) bool {
	if term == "" {
		return false
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(rec.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Description), term) {
		return true
	}
	for _, tag := range rec.Tags() {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
