// Package monolith reads conference listings from the conference-owning service.
package monolith

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"conferencego/internal/domain"
)

type listResponse struct {
	Conferences []domain.ConferenceSummary `json:"conferences"`
}

type conferenceFetcher struct {
	client  *http.Client
	baseURL string
}

// NewConferenceFetcher returns a fetcher for GET <baseURL>/api/conferences/.
func NewConferenceFetcher(client *http.Client, baseURL string) domain.ConferenceFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &conferenceFetcher{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (f *conferenceFetcher) FetchConferences(ctx context.Context) ([]domain.ConferenceSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/conferences/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conferences: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("conference api returned status: %d", resp.StatusCode)
	}

	var data listResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode conference list: %w", err)
	}
	return data.Conferences, nil
}
