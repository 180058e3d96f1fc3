// Package entity defines the entities and errors used in the application.
// It includes the URLRecord struct, which represents a shortened URL together
// with its click history, and the error kinds returned by the registry.
package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidURL is returned when the original URL is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidShortcode is returned when a custom short code does not match the code pattern.
	ErrInvalidShortcode = errors.New("invalid short code")
	// ErrShortcodeTaken is returned when a custom short code is already held by a record.
	ErrShortcodeTaken = errors.New("short code taken")
	// ErrInvalidValidity is returned when the validity window is not a positive finite number of minutes.
	ErrInvalidValidity = errors.New("invalid validity")
	// ErrTooManyRequests is returned when a batch holds more submissions than allowed.
	ErrTooManyRequests = errors.New("too many urls in one batch")
	// ErrNotFound is returned when a short code or id is unknown or the record has expired.
	ErrNotFound = errors.New("url not found or expired")
)

// SubmissionError reports which submission of a batch was rejected.
type SubmissionError struct {
	Index int   // Index is the zero-based position of the submission in the batch.
	Err   error // Err is one of the error kinds above.
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission %d: %v", e.Index, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Submission is a request to shorten one URL.
type Submission struct {
	OriginalURL     string   // OriginalURL is the URL to shorten.
	ValidityMinutes *float64 // ValidityMinutes is the validity window; nil means the default.
	CustomShortcode string   // CustomShortcode is the requested code; empty means generate one.
}

// URLRecord represents a shortened URL.
type URLRecord struct {
	ID          string       `json:"id"`
	OriginalURL string       `json:"originalUrl"`
	ShortCode   string       `json:"shortCode"`
	CreatedAt   time.Time    `json:"createdAt"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	Clicks      []ClickEvent `json:"clicks"`
}

// ClickEvent is one successful resolution of a short code.
type ClickEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Location  string    `json:"location"`
	UserAgent string    `json:"userAgent"`
}

// IsExpired reports whether the record no longer resolves at the given time.
func (u *URLRecord) IsExpired(now time.Time) bool {
	return !u.ExpiresAt.After(now)
}

// Clone returns a deep copy of the record.
func (u *URLRecord) Clone() URLRecord {
	c := *u
	c.Clicks = make([]ClickEvent, len(u.Clicks))
	copy(c.Clicks, u.Clicks)
	return c
}

// Visit describes the client resolving a short code.
type Visit struct {
	Source    string // Source is the referrer hostname; empty means "direct".
	UserAgent string // UserAgent is the client's User-Agent header.
	IP        string // IP is the client address used for the location lookup; may be empty.
}

// Stats holds totals over all records currently held by the registry.
type Stats struct {
	TotalURLs   int `json:"total_urls"`
	ActiveURLs  int `json:"active_urls"`
	TotalClicks int `json:"total_clicks"`
}

// Location is a coarse geolocation result.
type Location struct {
	City    string
	Country string
}

// String formats the location as "City, Country", using "Unknown" for missing parts.
func (l Location) String() string {
	city, country := l.City, l.Country
	if city == "" {
		city = "Unknown"
	}
	if country == "" {
		country = "Unknown"
	}
	return city + ", " + country
}

// UnknownLocation is recorded when the location lookup fails.
const UnknownLocation = "Unknown Location"
