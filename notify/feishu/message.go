package feishu

import (
	"fmt"
	"strings"

	"github.com/poiesic/paperflow/core"
)

// Feishu incoming-webhook payloads. Only the "post" and "text" message
// types are used.
type payload struct {
	MsgType string   `json:"msg_type"`
	Content *content `json:"content"`
}

type content struct {
	Text string    `json:"text,omitempty"`
	Post *postBody `json:"post,omitempty"`
}

type postBody struct {
	Post postLocale `json:"zh_cn"`
}

type postLocale struct {
	Title   string        `json:"title"`
	Content [][]postBlock `json:"content"`
}

type postBlock struct {
	Tag  string `json:"tag"`
	Text string `json:"text,omitempty"`
	Href string `json:"href,omitempty"`
}

func textPayload(text string) *payload {
	return &payload{
		MsgType: "text",
		Content: &content{Text: text},
	}
}

func postPayload(title string, entries []core.DigestEntry, linkStyle string) *payload {
	lines := make([][]postBlock, 0, len(entries))
	for _, entry := range entries {
		line := []postBlock{
			{Tag: "a", Text: entry.Paper.Title, Href: paperLink(entry.Paper, linkStyle)},
		}
		if tldr := strings.TrimSpace(entry.Classification.TLDR); tldr != "" {
			line = append(line, postBlock{Tag: "text", Text: " | " + tldr})
		}
		lines = append(lines, line)
	}

	return &payload{
		MsgType: "post",
		Content: &content{
			Post: &postBody{
				Post: postLocale{
					Title:   title,
					Content: lines,
				},
			},
		},
	}
}

// paperLink rewrites the entry link per the configured style. Unknown
// styles and papers without an arXiv ID fall back to the stored URL.
func paperLink(paper core.Paper, linkStyle string) string {
	if paper.ArxivId == "" {
		return paper.URL
	}
	switch linkStyle {
	case "papers_cool":
		return "https://papers.cool/arxiv/" + paper.ArxivId
	case "alphaxiv":
		return "https://www.alphaxiv.org/abs/" + paper.ArxivId
	default:
		return paper.URL
	}
}

// renderSeparator fills the {current}, {total} and {label} placeholders.
func renderSeparator(template string, current, total int, label string) string {
	replacer := strings.NewReplacer(
		"{current}", fmt.Sprintf("%d", current),
		"{total}", fmt.Sprintf("%d", total),
		"{label}", label,
	)
	return replacer.Replace(template)
}
