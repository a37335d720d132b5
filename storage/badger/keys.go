package badger

import (
	"encoding/binary"
	"regexp"
	"strings"

	"github.com/poiesic/paperflow/core"
)

// Key prefixes for different data types
const (
	stageMarkerPrefix   = "stgmrk"
	paperRecordPrefix   = "paprec"
	paperDayPrefix      = "paprecd"
	fetchBatchPrefix    = "fbatch"
	classifiedDocPrefix = "clsdoc"
	taxonomyPrefix      = "clstax"
)

var unsafeSegmentChars = regexp.MustCompile(`[^a-z0-9.]+`)

// safeSegment sanitises a label into a key segment: lowercase, runs of
// unsafe characters collapsed to "-". Returns fallback for empty input.
func safeSegment(value, fallback string) string {
	token := strings.ToLower(strings.TrimSpace(value))
	token = unsafeSegmentChars.ReplaceAllString(token, "-")
	token = strings.Trim(token, "-")
	if token == "" {
		return fallback
	}
	return token
}

// makeMarkerKey generates a key for a stage marker.
// Format: prefix:day:stage
func makeMarkerKey(day string, stage core.Stage) []byte {
	return []byte(stageMarkerPrefix + ":" + day + ":" + string(stage))
}

// makeMarkerDayPrefix generates a scan prefix for all markers of a day.
func makeMarkerDayPrefix(day string) []byte {
	return []byte(stageMarkerPrefix + ":" + day + ":")
}

// makePaperKey generates a key for a paper by ID.
// Format: prefix: followed by the big-endian ID.
func makePaperKey(id core.ID) []byte {
	prefix := []byte(paperRecordPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePaperDayKey generates the day-index key for a paper.
// Format: prefix:day: followed by the big-endian ID. One entry per paper and
// day, so re-persisting a paper overwrites the index entry instead of
// appending a second one.
func makePaperDayKey(day string, id core.ID) []byte {
	prefix := []byte(paperDayPrefix + ":" + day + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePaperDayPrefix generates a scan prefix for all papers of a day.
func makePaperDayPrefix(day string) []byte {
	return []byte(paperDayPrefix + ":" + day + ":")
}

// makeFetchBatchKey generates a key for a fetch batch record.
// Format: prefix:day:category:batchID
func makeFetchBatchKey(day, category, batchId string) []byte {
	return []byte(fetchBatchPrefix + ":" + day + ":" + safeSegment(category, "uncategorised") + ":" + batchId)
}

// makeFetchBatchDayPrefix generates a scan prefix for the batches of a day.
func makeFetchBatchDayPrefix(day string) []byte {
	return []byte(fetchBatchPrefix + ":" + day + ":")
}

// makeClassifiedDocKey generates the primary key for a classification result.
// Format: prefix: followed by the big-endian paper ID.
func makeClassifiedDocKey(id core.ID) []byte {
	prefix := []byte(classifiedDocPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeTaxonomyKey generates the archive index key for a classification.
// Format: prefix:primary:secondary:application: followed by the paper ID.
// Mirrors the on-disk taxonomy hierarchy of the paper archive.
func makeTaxonomyKey(cls *core.Classification) []byte {
	prefix := []byte(taxonomyPrefix + ":" +
		safeSegment(cls.PrimaryArea, "uncategorised") + ":" +
		safeSegment(cls.SecondaryFocus, "general") + ":" +
		safeSegment(cls.ApplicationDomain, "general") + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(cls.PaperId))
	return buf
}

// makeTaxonomyPrefix generates a scan prefix for a taxonomy query. Empty
// segments truncate the prefix, matching any value for that and deeper levels.
func makeTaxonomyPrefix(primaryArea, secondaryFocus, applicationDomain string) []byte {
	prefix := taxonomyPrefix + ":"
	if primaryArea == "" {
		return []byte(prefix)
	}
	prefix += safeSegment(primaryArea, "uncategorised") + ":"
	if secondaryFocus == "" {
		return []byte(prefix)
	}
	prefix += safeSegment(secondaryFocus, "general") + ":"
	if applicationDomain == "" {
		return []byte(prefix)
	}
	return []byte(prefix + safeSegment(applicationDomain, "general") + ":")
}
