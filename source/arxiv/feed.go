package arxiv

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/source"
)

// atomFeed mirrors the subset of the arXiv Atom response we consume.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Id        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published time.Time    `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

func parseFeed(body []byte) (*atomFeed, error) {
	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: malformed feed: %v", source.ErrUnavailable, err)
	}
	return &feed, nil
}

// versionSuffix matches the trailing vN on arXiv identifiers.
var versionSuffix = regexp.MustCompile(`v\d+$`)

func (e atomEntry) toPaper(category string) core.Paper {
	arxivId := e.Id
	if idx := strings.LastIndex(arxivId, "/abs/"); idx >= 0 {
		arxivId = arxivId[idx+len("/abs/"):]
	}
	arxivId = versionSuffix.ReplaceAllString(arxivId, "")

	absURL := e.Id
	for _, link := range e.Links {
		if link.Rel == "alternate" || (link.Rel == "" && link.Type == "text/html") {
			absURL = link.Href
			break
		}
	}

	authors := make([]string, 0, len(e.Authors))
	for _, author := range e.Authors {
		if name := strings.TrimSpace(author.Name); name != "" {
			authors = append(authors, name)
		}
	}

	return core.Paper{
		Id:        core.IDFromContent(arxivId),
		ArxivId:   arxivId,
		Title:     collapseWhitespace(e.Title),
		Summary:   collapseWhitespace(e.Summary),
		URL:       absURL,
		Category:  category,
		Authors:   authors,
		Published: e.Published.UTC(),
	}
}

// collapseWhitespace flattens the hard-wrapped text arXiv returns in
// titles and abstracts.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
