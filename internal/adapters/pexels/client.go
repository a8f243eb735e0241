// Package pexels finds location pictures through the Pexels search API.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"conferencego/internal/domain"
)

const defaultBaseURL = "https://api.pexels.com"

type searchResponse struct {
	Photos []struct {
		Src struct {
			Original string `json:"original"`
		} `json:"src"`
	} `json:"photos"`
}

type photoFinder struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewPhotoFinder returns a PhotoFinder that takes the first Pexels search hit for "<city> <state>".
func NewPhotoFinder(client *http.Client, apiKey string) domain.PhotoFinder {
	if client == nil {
		client = http.DefaultClient
	}
	return &photoFinder{client: client, apiKey: apiKey, baseURL: defaultBaseURL}
}

func (f *photoFinder) FindPhoto(ctx context.Context, city, state string) (string, error) {
	q := url.Values{}
	q.Set("query", city+" "+state)
	q.Set("per_page", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch from pexels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels api returned status: %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode pexels response: %w", err)
	}
	if len(data.Photos) == 0 || data.Photos[0].Src.Original == "" {
		return "", domain.ErrNoPhoto
	}
	return data.Photos[0].Src.Original, nil
}
