package explorer

import (
	"context"
	"net/url"
	"strings"
)

const headlinesPageSize = "10"

type Article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

type Headlines struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

type NewsClient struct {
	c      httpClient
	apiKey string
}

func NewNewsClient(opts Options) *NewsClient {
	return &NewsClient{
		c:      newHTTPClient("news", strings.TrimRight(opts.NewsURL, "/"), opts.HTTPClient, opts.Logger),
		apiKey: opts.NewsAPIKey,
	}
}

// TopHeadlines returns at most ten headlines for a two-letter country code,
// defaulting to "us".
func (nc *NewsClient) TopHeadlines(ctx context.Context, country string) (*Headlines, error) {
	if nc.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		country = "us"
	}

	var out Headlines
	err := nc.c.getJSON(ctx, "/top-headlines", url.Values{
		"country":  {country},
		"pageSize": {headlinesPageSize},
		"apiKey":   {nc.apiKey},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
