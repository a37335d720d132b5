package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "arxiv id", content: "2408.01234"},
		{name: "empty string", content: ""},
		{name: "long content", content: "A Survey of Long-Context Modeling in Large Language Models"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("2408.01234")
	id2 := IDFromContent("2408.01235")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("UTC+8", 8*3600))
	if got := DayKey(ts); got != "2026-03-14" {
		t.Errorf("DayKey() = %q, want %q", got, "2026-03-14")
	}
}

func TestClassification_Labels(t *testing.T) {
	tests := []struct {
		name string
		cls  Classification
		want []string
	}{
		{
			name: "all fields",
			cls: Classification{
				PrimaryArea:       "Text_Models",
				SecondaryFocus:    "reasoning",
				ApplicationDomain: " Code_Generation ",
				InterestTags:      []string{"Agents"},
			},
			want: []string{"text_models", "reasoning", "code_generation", "agents"},
		},
		{
			name: "blank fields dropped",
			cls: Classification{
				PrimaryArea:    "diffusion_models",
				SecondaryFocus: "  ",
			},
			want: []string{"diffusion_models"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cls.Labels()
			if len(got) != len(tt.want) {
				t.Fatalf("Labels() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Labels()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
