package nominatim

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cat-a-log/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("nominatim client not configured")
	ErrUpstream      = errors.New("nominatim upstream error")
	ErrNoResult      = errors.New("nominatim: no result for coordinates")
)

// Config del cliente de reverse geocoding.
// Nominatim exige identificar la aplicación vía User-Agent.
type Config struct {
	BaseURL   string // ej: https://nominatim.openstreetmap.org
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	http       *httpclient.Client
	userAgent  string
	configured bool
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = "cat-a-log/1.0"
	}

	return &Client{
		http:       hc,
		userAgent:  ua,
		configured: base != "",
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.configured
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		Village       string `json:"village"`
		Town          string `json:"town"`
		City          string `json:"city"`
	} `json:"address"`
}

// ReverseGeocode implementa geocode.Resolver.
// Devuelve el nombre de zona más específico disponible, o el display_name.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))
	q.Set("zoom", "16")

	headers := map[string]string{
		"User-Agent": c.userAgent,
	}

	var out reverseResponse
	if err := c.http.GetJSON(ctx, "/reverse", q, headers, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	for _, candidate := range []string{
		out.Address.Neighbourhood,
		out.Address.Suburb,
		out.Address.Village,
		out.Address.Town,
		out.Address.City,
	} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s, nil
		}
	}

	if s := strings.TrimSpace(out.DisplayName); s != "" {
		return s, nil
	}
	return "", ErrNoResult
}
