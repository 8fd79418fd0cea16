package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smomoh/flagquiz/internal/logger"
)

// DefaultURL requests only the fields the quiz needs.
const DefaultURL = "https://restcountries.com/v3.1/all?fields=name,cca2,region,subregion,flags"

// RawCountry mirrors one record of the REST Countries v3.1 payload.
type RawCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2      string `json:"cca2"`
	Region    string `json:"region"`
	Subregion string `json:"subregion"`
	Flags     struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
}

type Client struct {
	httpClient *http.Client
	url        string
	log        *logger.Logger
}

// New creates a client for the REST Countries API. An empty url selects
// DefaultURL; a zero timeout selects 15 seconds.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		log:        logger.Default().WithPrefix("restcountries"),
	}
}

// FetchAll retrieves the full country list in a single request.
func (c *Client) FetchAll(ctx context.Context) ([]RawCountry, error) {
	log := logger.FromContext(ctx).WithPrefix("restcountries")

	log.Debug("fetching countries from: %s", c.url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch countries: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("countries response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("countries request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("countries status %d: %s", resp.StatusCode, string(body))
	}

	var out []RawCountry
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode countries response: %v", err)
		return nil, err
	}

	log.Info("fetched %d country records", len(out))
	return out, nil
}
