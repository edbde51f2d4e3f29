package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/tubesift/tubesift/pkg/errors"
)

// Criteria is one set of filter constraints. Every field is optional;
// absence means unconstrained. The zero value matches every record.
//
// The persisted shape is the preset "filters" JSON document; decoding
// rejects unknown keys instead of silently ignoring them.
type Criteria struct {
	ContentKind     Kind       `json:"content_kind,omitempty"`
	DurationMin     *int64     `json:"duration_min,omitempty"`
	DurationMax     *int64     `json:"duration_max,omitempty"`
	ViewsMin        *int64     `json:"popularity_min,omitempty"`
	LikesMin        *int64     `json:"likes_min,omitempty"`
	LikesMax        *int64     `json:"likes_max,omitempty"`
	DateAfter       *time.Time `json:"date_after,omitempty"`
	DateBefore      *time.Time `json:"date_before,omitempty"`
	KeywordsInclude []string   `json:"keywords_include,omitempty"`
	KeywordsExclude []string   `json:"keywords_exclude,omitempty"`
	Languages       []string   `json:"languages,omitempty"`
	Channels        []string   `json:"channel_ids,omitempty"`
	ChannelsExclude []string   `json:"exclude_channel_ids,omitempty"`
}

// Validate checks the criteria invariants: bound ordering and keyword
// set disjointness. A criteria value that fails validation must never
// reach the filter engine or be persisted.
func (c *Criteria) Validate() error {
	if c.ContentKind != "" && c.ContentKind != KindAny && !c.ContentKind.Valid() {
		return errors.Validation(errors.KindUnknownFilterKey, "content_kind",
			"unknown content kind "+string(c.ContentKind))
	}
	if c.DurationMin != nil && c.DurationMax != nil && *c.DurationMin > *c.DurationMax {
		return errors.Validation(errors.KindRangeInversion, "duration",
			"duration_min exceeds duration_max")
	}
	if c.LikesMin != nil && c.LikesMax != nil && *c.LikesMin > *c.LikesMax {
		return errors.Validation(errors.KindRangeInversion, "likes",
			"likes_min exceeds likes_max")
	}
	if c.DateAfter != nil && c.DateBefore != nil && c.DateAfter.After(*c.DateBefore) {
		return errors.Validation(errors.KindRangeInversion, "date",
			"date_after is later than date_before")
	}

	if len(c.KeywordsInclude) > 0 && len(c.KeywordsExclude) > 0 {
		excluded := make(map[string]struct{}, len(c.KeywordsExclude))
		for _, kw := range c.KeywordsExclude {
			excluded[strings.ToLower(kw)] = struct{}{}
		}
		for _, kw := range c.KeywordsInclude {
			if _, ok := excluded[strings.ToLower(kw)]; ok {
				return errors.Validation(errors.KindConflictingKeywords, "keywords",
					"keyword appears in both include and exclude: "+kw)
			}
		}
	}

	return nil
}

// IsEmpty reports whether the criteria places no constraint at all.
func (c *Criteria) IsEmpty() bool {
	return (c.ContentKind == "" || c.ContentKind == KindAny) &&
		c.DurationMin == nil && c.DurationMax == nil &&
		c.ViewsMin == nil && c.LikesMin == nil && c.LikesMax == nil &&
		c.DateAfter == nil && c.DateBefore == nil &&
		len(c.KeywordsInclude) == 0 && len(c.KeywordsExclude) == 0 &&
		len(c.Languages) == 0 && len(c.Channels) == 0 && len(c.ChannelsExclude) == 0
}

// Equal reports structural, field-by-field equality, so the same
// criteria can be compared across presets and ad hoc use.
func (c *Criteria) Equal(other *Criteria) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ContentKind == other.ContentKind &&
		int64PtrEqual(c.DurationMin, other.DurationMin) &&
		int64PtrEqual(c.DurationMax, other.DurationMax) &&
		int64PtrEqual(c.ViewsMin, other.ViewsMin) &&
		int64PtrEqual(c.LikesMin, other.LikesMin) &&
		int64PtrEqual(c.LikesMax, other.LikesMax) &&
		timePtrEqual(c.DateAfter, other.DateAfter) &&
		timePtrEqual(c.DateBefore, other.DateBefore) &&
		stringsEqual(c.KeywordsInclude, other.KeywordsInclude) &&
		stringsEqual(c.KeywordsExclude, other.KeywordsExclude) &&
		stringsEqual(c.Languages, other.Languages) &&
		stringsEqual(c.Channels, other.Channels) &&
		stringsEqual(c.ChannelsExclude, other.ChannelsExclude)
}

// EncodeCriteria serializes a criteria value to its persisted JSON
// document form.
func EncodeCriteria(c *Criteria) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeInternal, "encode criteria", err)
	}
	return string(data), nil
}

// DecodeCriteria parses a persisted filters document. Unknown keys and
// invariant violations are rejected at load time.
func DecodeCriteria(data string) (*Criteria, error) {
	c := &Criteria{}
	if strings.TrimSpace(data) == "" {
		return c, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, errors.Validation(errors.KindUnknownFilterKey, "filters",
			"malformed filters document: "+err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
