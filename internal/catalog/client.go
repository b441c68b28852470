// Package catalog talks to the external character API and runs the
// filter/sort/paginate pipeline over the list it returns.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vedran77/sortinghat/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "catalog"),
	}
}

// characterDTO mirrors the upstream payload; only the fields we use.
type characterDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	House    string `json:"house"`
	Image    string `json:"image"`
	Species  string `json:"species"`
	Gender   string `json:"gender"`
	Patronus string `json:"patronus"`
	Actor    string `json:"actor"`
}

// ListCharacters fetches the full catalog. Entries without an id or a name
// are dropped.
func (c *Client) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	url := c.baseURL + "/api/characters"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching characters: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("character api returned status %d: %s", resp.StatusCode, string(body))
	}

	var dtos []characterDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decoding characters: %w", err)
	}

	chars := make([]domain.Character, 0, len(dtos))
	skipped := 0
	for _, d := range dtos {
		if d.ID == "" || d.Name == "" {
			skipped++
			continue
		}
		chars = append(chars, domain.Character{
			ID:       d.ID,
			Name:     d.Name,
			House:    d.House,
			Image:    d.Image,
			Species:  d.Species,
			Gender:   d.Gender,
			Patronus: d.Patronus,
			Actor:    d.Actor,
		})
	}

	c.logger.Debug("fetched characters",
		"count", len(chars), "skipped", skipped, "duration", time.Since(start))
	return chars, nil
}

// GetCharacter returns the character with the given id, or nil if the
// catalog does not contain it.
func (c *Client) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	chars, err := c.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	for i := range chars {
		if chars[i].ID == id {
			return &chars[i], nil
		}
	}
	return nil, nil
}
