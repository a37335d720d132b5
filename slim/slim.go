package slim

import (
	"github.com/poiesic/paperflow/config"
	"github.com/poiesic/paperflow/core"
)

// maxPapers caps how many papers a slimmed listing carries.
const maxPapers = 10

// PaperView is the reduced form of one classified paper.
type PaperView struct {
	Title       string `json:"title"`
	PrimaryArea string `json:"primary_area"`
}

// PapersView is a capped paper listing with the counts needed to tell
// the reader what was left out.
type PapersView struct {
	Count   int         `json:"count"`
	Showing int         `json:"showing"`
	Papers  []PaperView `json:"papers"`
}

// ChannelView exposes a channel's type and whether it is usable,
// without its webhook URL.
type ChannelView struct {
	Type       string `json:"type"`
	Configured bool   `json:"configured"`
}

// LLMView exposes the classifier endpoint without credentials.
type LLMView struct {
	Model string `json:"model"`
	Host  string `json:"host"`
}

// ProfileView is the reduced form of a runtime profile.
type ProfileView struct {
	Categories   []string      `json:"categories"`
	InterestTags []string      `json:"interest_tags,omitempty"`
	Channels     []ChannelView `json:"channels,omitempty"`
	LLM          LLMView       `json:"llm"`
}

// Papers reduces classified papers to at most maxPapers title/label
// pairs. Count always reflects the full input size.
func Papers(entries []core.DigestEntry) PapersView {
	view := PapersView{
		Count:  len(entries),
		Papers: []PaperView{},
	}

	for _, entry := range entries {
		if view.Showing == maxPapers {
			break
		}
		view.Papers = append(view.Papers, PaperView{
			Title:       entry.Paper.Title,
			PrimaryArea: entry.Classification.PrimaryArea,
		})
		view.Showing++
	}

	return view
}

// Profile reduces a runtime profile to what is safe to echo back:
// categories, interest tag labels, channel types and the classifier
// endpoint. Keywords, schedule detail, data paths and webhook URLs are
// dropped.
func Profile(p *config.Profile) ProfileView {
	view := ProfileView{
		Categories: p.Categories,
		LLM: LLMView{
			Model: p.LLM.Model,
			Host:  p.LLM.Host,
		},
	}

	for _, tag := range p.InterestTags {
		view.InterestTags = append(view.InterestTags, tag.Label)
	}
	for _, channel := range p.Channels {
		view.Channels = append(view.Channels, ChannelView{
			Type:       channel.Type,
			Configured: channel.WebhookURL != "",
		})
	}

	return view
}

// Summary passes a run summary through unchanged. Status and stage
// counts are always preserved in full.
func Summary(s core.RunSummary) core.RunSummary {
	return s
}
