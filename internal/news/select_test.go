package news

import (
	"strings"
	"testing"
	"time"
)

func TestSelectStoriesSortsNewestFirst(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	articles := []Article{
		{Title: "Older story", URL: "https://example.com/old", Source: "A", PublishedAt: now.Add(-2 * time.Hour)},
		{Title: "Newest story", URL: "https://example.com/new", Source: "B", PublishedAt: now},
		{Title: "Undated story", URL: "https://example.com/undated", Source: "C"},
		{Title: "Middle story", URL: "https://example.com/mid", Source: "D", PublishedAt: now.Add(-1 * time.Hour)},
	}

	stories := SelectStories(articles, 5)

	wantOrder := []string{"Newest story", "Middle story", "Older story", "Undated story"}
	for i, want := range wantOrder {
		if stories[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, stories[i].Title, want)
		}
		if stories[i].ID != i {
			t.Errorf("position %d: id = %d, want sequential", i, stories[i].ID)
		}
	}
	if stories[3].PublishedAt != "" {
		t.Errorf("undated story should have empty publishedAt, got %q", stories[3].PublishedAt)
	}
}

func TestSelectStoriesTruncates(t *testing.T) {
	var articles []Article
	for i := 0; i < 8; i++ {
		articles = append(articles, Article{
			Title:       "Story " + string(rune('A'+i)),
			URL:         "https://example.com/" + string(rune('a'+i)),
			PublishedAt: time.Date(2026, 8, 30, i, 0, 0, 0, time.UTC),
		})
	}

	stories := SelectStories(articles, 5)
	if len(stories) != 5 {
		t.Fatalf("expected 5 stories, got %d", len(stories))
	}
}

func TestCreateSummary(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    string
	}{
		{
			name:    "prefers description over content",
			article: Article{Title: "T", Description: "A detailed description of the event here.", Content: "Ignored content body text."},
			want:    "A detailed description of the event here.",
		},
		{
			name:    "short description falls through to content",
			article: Article{Title: "T", Description: "Too short.", Content: "The content field carries the real story body."},
			want:    "The content field carries the real story body.",
		},
		{
			name:    "truncation markers stripped from content",
			article: Article{Title: "T", Content: "The quarterly numbers beat every forecast on record [+1234 chars]"},
			want:    "The quarterly numbers beat every forecast on record.",
		},
		{
			name:    "falls back to title",
			article: Article{Title: "Just the headline"},
			want:    "Just the headline.",
		},
		{
			name:    "keeps at most two sentences",
			article: Article{Title: "T", Description: "First sentence here. Second sentence follows! Third sentence is dropped. Fourth too."},
			want:    "First sentence here. Second sentence follows!",
		},
		{
			name:    "appends terminal punctuation",
			article: Article{Title: "T", Description: "An unpunctuated description that is long enough"},
			want:    "An unpunctuated description that is long enough.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := createSummary(tt.article)
			if got != tt.want {
				t.Errorf("createSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateStories(t *testing.T) {
	valid := Story{ID: 0, Title: "T", URL: "https://example.com", Source: "S", Summary: "Sum."}

	t.Run("empty list is an error", func(t *testing.T) {
		if _, err := ValidateStories(nil); err == nil {
			t.Fatal("expected error for empty story list")
		}
	})

	t.Run("empty required field is an error", func(t *testing.T) {
		bad := valid
		bad.Summary = ""
		_, err := ValidateStories([]Story{bad})
		if err == nil {
			t.Fatal("expected error for empty summary")
		}
		if !strings.Contains(err.Error(), "summary") {
			t.Errorf("error should name the field: %v", err)
		}
	})

	t.Run("fewer than 3 stories warns but passes", func(t *testing.T) {
		warnings, err := ValidateStories([]Story{valid})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(warnings))
		}
	})

	t.Run("three stories pass silently", func(t *testing.T) {
		s2, s3 := valid, valid
		s2.ID, s3.ID = 1, 2
		warnings, err := ValidateStories([]Story{valid, s2, s3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})
}
