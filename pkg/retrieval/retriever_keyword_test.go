package retrieval

import (
	"testing"

	"device-support-be/internal/entity"

	"github.com/google/uuid"
)

func TestCountKeywordMatches(t *testing.T) {
	d := &entity.RagDocument{
		Id:      uuid.New(),
		Title:   "Printer Paper Jam",
		Content: "Open the rear tray and remove the stuck sheet.",
		Tags:    []string{"printer", "jam"},
	}

	tests := []struct {
		name     string
		keywords []string
		want     int
	}{
		{name: "no keywords", keywords: nil, want: 0},
		{name: "tag match", keywords: []string{"jam"}, want: 1},
		{name: "content match case-insensitive", keywords: []string{"TRAY"}, want: 1},
		{name: "title match", keywords: []string{"paper"}, want: 1},
		{name: "mixed hits and misses", keywords: []string{"printer", "tray", "ethernet"}, want: 2},
		{name: "empty keyword skipped", keywords: []string{""}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countKeywordMatches(d, tt.keywords); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}
