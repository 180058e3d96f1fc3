// Package geo resolves client addresses to a coarse "City, Country" location.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

var ErrDisabled = errors.New("location lookup disabled")

// Disabled never resolves a location, so every click is recorded with
// entity.UnknownLocation.
type Disabled struct{}

func (Disabled) Locate(_ context.Context, _ string) (entity.Location, error) {
	return entity.Location{}, ErrDisabled
}

type ipapiResponse struct {
	City        string `json:"city"`
	CountryName string `json:"country_name"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// IPAPI looks locations up through the ipapi.co JSON API.
type IPAPI struct {
	baseURL string
	client  *http.Client
}

func NewIPAPI(baseURL string, timeout time.Duration) *IPAPI {
	return &IPAPI{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Locate looks up ip. Loopback, private and unparsable addresses are replaced
// by the address the request to the API originates from.
func (l *IPAPI) Locate(ctx context.Context, ip string) (entity.Location, error) {
	const op = "adapter.geo.IPAPI.Locate"

	endpoint, err := l.endpoint(ip)
	if err != nil {
		return entity.Location{}, fmt.Errorf("%s: failed to build request url: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entity.Location{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return entity.Location{}, fmt.Errorf("%s: failed to send request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Location{}, fmt.Errorf("%s: unexpected status code: %d", op, resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return entity.Location{}, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	if body.Error {
		return entity.Location{}, fmt.Errorf("%s: lookup rejected: %s", op, body.Reason)
	}

	return entity.Location{
		City:    body.City,
		Country: body.CountryName,
	}, nil
}

func (l *IPAPI) endpoint(ip string) (string, error) {
	if !isPublic(ip) {
		ip = ""
	}

	u, err := url.JoinPath(l.baseURL, ip, "json")
	if err != nil {
		return "", err
	}

	return u + "/", nil
}

func isPublic(ip string) bool {
	addr := net.ParseIP(ip)
	if addr == nil {
		return false
	}

	return !addr.IsLoopback() && !addr.IsPrivate() && !addr.IsUnspecified() &&
		!addr.IsLinkLocalUnicast() && !addr.IsMulticast()
}
