package notify

import (
	"sort"

	"github.com/poiesic/paperflow/core"
)

// BuildDigest filters and groups classified papers for delivery.
//
// An entry is dropped when any of its labels, compared case-insensitively,
// matches an exclusion tag. Surviving entries with interest tags lead the
// digest in their original order; the rest are grouped by primary area
// with groups sorted by label.
func BuildDigest(date string, entries []core.DigestEntry, excludeTags []string) core.Digest {
	excluded := make(map[string]bool, len(excludeTags))
	for _, tag := range excludeTags {
		if norm := core.NormalizeLabel(tag); norm != "" {
			excluded[norm] = true
		}
	}

	digest := core.Digest{Date: date}
	byArea := make(map[string][]core.DigestEntry)

	for _, entry := range entries {
		if matchesExclusion(&entry.Classification, excluded) {
			continue
		}
		digest.Total++

		if len(entry.Classification.InterestTags) > 0 {
			digest.Interest = append(digest.Interest, entry)
			continue
		}
		area := entry.Classification.PrimaryArea
		byArea[area] = append(byArea[area], entry)
	}

	areas := make([]string, 0, len(byArea))
	for area := range byArea {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	for _, area := range areas {
		digest.Groups = append(digest.Groups, core.DigestGroup{
			PrimaryArea: area,
			Entries:     byArea[area],
		})
	}

	return digest
}

func matchesExclusion(c *core.Classification, excluded map[string]bool) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, label := range c.Labels() {
		if excluded[label] {
			return true
		}
	}
	return false
}
