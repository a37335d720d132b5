package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is derived from content so that re-fetching the same paper
// always produces the same identity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DayKeyFormat is the layout of logical run dates. A run is identified by a
// calendar day, not by wall-clock time.
const DayKeyFormat = "2006-01-02"

// DayKey returns the logical date key for t in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyFormat)
}

// NormalizeLabel lowercases and trims a label for comparison. Returns ""
// for labels that are empty after trimming.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Paper is a single fetched document. Immutable once fetched; owned by the
// run (date) that fetched it.
type Paper struct {
	Id        ID                `json:"id"`
	ArxivId   string            `json:"arxiv_id"`
	Title     string            `json:"title"`
	Summary   string            `json:"summary"`
	URL       string            `json:"url"`
	Category  string            `json:"category"` // primary arXiv category, e.g. "cs.CL"
	Authors   []string          `json:"authors,omitempty"`
	Published time.Time         `json:"published"`
	FetchedAt time.Time         `json:"fetched_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// InterestTag is a subscriber-defined label the classifier watches for.
// Papers strongly matching a tag's description or keywords are surfaced in a
// dedicated digest group.
type InterestTag struct {
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Classification is the structured label set produced by the classifier for
// one paper. Immutable once written; absent when classification failed for
// that paper.
type Classification struct {
	PaperId           ID        `json:"paper_id"`
	PrimaryArea       string    `json:"primary_area"`
	SecondaryFocus    string    `json:"secondary_focus"`
	ApplicationDomain string    `json:"application_domain"`
	TLDR              string    `json:"tldr"`
	InterestTags      []string  `json:"interest_tags,omitempty"`
	ClassifiedAt      time.Time `json:"classified_at"`
}

// Labels returns every label field of the classification, normalized, for
// exclusion-tag matching.
func (c *Classification) Labels() []string {
	labels := make([]string, 0, 3+len(c.InterestTags))
	for _, label := range []string{c.PrimaryArea, c.SecondaryFocus, c.ApplicationDomain} {
		if norm := NormalizeLabel(label); norm != "" {
			labels = append(labels, norm)
		}
	}
	for _, tag := range c.InterestTags {
		if norm := NormalizeLabel(tag); norm != "" {
			labels = append(labels, norm)
		}
	}
	return labels
}
