package news

import "time"

// Article is a raw news item as returned by the news provider. Fields are
// optional except that title and URL must be present to survive
// deduplication.
type Article struct {
	Title       string
	URL         string
	Source      string
	Description string
	Content     string
	PublishedAt time.Time
}

// Story is a normalized, deduplicated news item. The zero-based ID is
// assigned in selection order and is referenced by dialogue lines as a
// citation target, so it is stable and unique within a single run.
type Story struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"publishedAt,omitempty"`
}
