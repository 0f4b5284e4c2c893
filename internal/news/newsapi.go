package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://newsapi.org/v2"

// APIError reports a news provider failure (unreachable, unauthorized, or
// empty result set). It is distinct from input validation errors so callers
// can tell a bad dependency from bad input.
type APIError struct {
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Client fetches articles from NewsAPI.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// FetchOptions controls a fetch run.
type FetchOptions struct {
	Topics    []string
	Region    string
	HoursBack int
}

// Fetch pulls recent articles for each topic via the everything endpoint,
// falling back to top headlines for the region when no topic yields
// anything. Per-topic failures are logged and skipped; a run that produces
// no articles at all is an *APIError.
func (c *Client) Fetch(ctx context.Context, opts FetchOptions) ([]Article, error) {
	hoursBack := opts.HoursBack
	if hoursBack <= 0 {
		hoursBack = 24
	}
	from := time.Now().Add(-time.Duration(hoursBack) * time.Hour).Format("2006-01-02T15:04:05")

	var all []Article
	for _, topic := range opts.Topics {
		articles, err := c.fetchByTopic(ctx, topic, from)
		if err != nil {
			c.logger.Warn("topic fetch failed", "topic", topic, "error", err)
			continue
		}
		all = append(all, articles...)
	}

	if len(all) == 0 {
		c.logger.Info("no articles found for provided topics, trying top headlines")
		headlines, err := c.fetchTopHeadlines(ctx, opts.Region)
		if err != nil {
			return nil, err
		}
		all = headlines
	}

	if len(all) == 0 {
		return nil, &APIError{Message: "no news articles found; check your API key or try different topics"}
	}

	return all, nil
}

func (c *Client) fetchByTopic(ctx context.Context, topic, from string) ([]Article, error) {
	params := url.Values{
		"apiKey":   {c.apiKey},
		"q":        {topic},
		"from":     {from},
		"language": {"en"},
		"sortBy":   {"publishedAt"},
		"pageSize": {"20"},
	}

	resp, err := c.get(ctx, "/everything", params)
	if err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned status %q: %s", resp.Status, resp.Message)
	}
	return resp.articles(), nil
}

func (c *Client) fetchTopHeadlines(ctx context.Context, region string) ([]Article, error) {
	params := url.Values{
		"apiKey":   {c.apiKey},
		"country":  {region},
		"pageSize": {"20"},
	}

	resp, err := c.get(ctx, "/top-headlines", params)
	if err != nil {
		return nil, &APIError{Message: "failed to connect to NewsAPI", Err: err}
	}
	if resp.Status != "ok" {
		return nil, &APIError{Message: fmt.Sprintf("NewsAPI error: %s", resp.Message)}
	}
	return resp.articles(), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*newsAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	var decoded newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	return &decoded, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

func (r *newsAPIResponse) articles() []Article {
	articles := make([]Article, 0, len(r.Articles))
	for _, item := range r.Articles {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}
		articles = append(articles, Article{
			Title:       item.Title,
			URL:         item.URL,
			Source:      item.Source.Name,
			Description: item.Description,
			Content:     item.Content,
			PublishedAt: publishedAt,
		})
	}
	return articles
}
