package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/model"
)

// DefaultFearGreedURL is CNN's graph data endpoint.
const DefaultFearGreedURL = "https://production.dataviz.cnn.io/index/fearandgreed/graphdata"

// FearGreedFetcher reads the CNN Fear & Greed index.
type FearGreedFetcher struct {
	URL    string
	Client *http.Client
}

// NewFearGreedFetcher creates a fetcher; an empty endpoint uses DefaultFearGreedURL.
func NewFearGreedFetcher(endpoint, proxyURL string) *FearGreedFetcher {
	if endpoint == "" {
		endpoint = DefaultFearGreedURL
	}
	return &FearGreedFetcher{URL: endpoint, Client: newHTTPClient(proxyURL)}
}

type fearGreedResponse struct {
	FearAndGreed struct {
		Score     float64 `json:"score"`
		Rating    string  `json:"rating"`
		Timestamp string  `json:"timestamp"`
	} `json:"fear_and_greed"`
}

func (f *FearGreedFetcher) FetchFearGreed(ctx context.Context) (*model.FearGreed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	// The endpoint rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fear & greed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch fear & greed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var r fearGreedResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode fear & greed: %w", err)
	}
	ts, err := calendar.ParseDate(r.FearAndGreed.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("fear & greed timestamp: %w", err)
	}
	return &model.FearGreed{
		Date:   calendar.Day(ts),
		Score:  r.FearAndGreed.Score,
		Rating: r.FearAndGreed.Rating,
	}, nil
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
