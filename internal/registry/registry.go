// Package registry holds the set of shortened URLs: it creates records,
// resolves short codes while recording clicks, and persists the whole
// collection to a single storage slot after every change.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"github.com/vadimbarashkov/shortlinks/internal/generator"
	"go.uber.org/zap"
)

const (
	// MaxBatchSize is the largest number of submissions accepted by CreateBatch.
	MaxBatchSize = 5
	// DefaultValidity is used when a submission carries no validity window.
	DefaultValidity = 30 * time.Minute
	// DefaultLookupTimeout bounds the location lookup made by Resolve.
	DefaultLookupTimeout = 3 * time.Second
	// DefaultSource is recorded for clicks without a referrer.
	DefaultSource = "direct"
)

// shortCodeRule accepts 3 to 10 ASCII letters and digits.
const shortCodeRule = "alphanum,min=3,max=10"

type storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type locator interface {
	Locate(ctx context.Context, ip string) (entity.Location, error)
}

type codeGenerator interface {
	ShortCode() (string, error)
	ID() (string, error)
}

type Option func(*Registry)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func WithGenerator(gen codeGenerator) Option {
	return func(r *Registry) {
		r.gen = gen
	}
}

// WithLocator sets the location lookup used by Resolve. Without a locator
// every click is recorded with entity.UnknownLocation.
func WithLocator(loc locator) Option {
	return func(r *Registry) {
		r.locator = loc
	}
}

func WithLookupTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.lookupTimeout = d
	}
}

type Registry struct {
	mu   sync.Mutex
	urls []*entity.URLRecord

	storage       storage
	locator       locator
	gen           codeGenerator
	validate      *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
	lookupTimeout time.Duration
}

// New builds a registry and loads the stored collection. Missing or corrupt
// data yields an empty registry.
func New(ctx context.Context, storage storage, opts ...Option) *Registry {
	r := &Registry{
		urls:          []*entity.URLRecord{},
		storage:       storage,
		gen:           generator.NewNanoid(),
		validate:      validator.New(),
		logger:        zap.NewNop(),
		now:           time.Now,
		lookupTimeout: DefaultLookupTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.load(ctx)

	return r
}

func (r *Registry) load(ctx context.Context) {
	data, err := r.storage.Load(ctx)
	if err != nil {
		r.logger.Error("Failed to load URLs from storage", zap.Error(err))
		return
	}

	if len(data) == 0 {
		return
	}

	var urls []*entity.URLRecord
	if err := json.Unmarshal(data, &urls); err != nil {
		r.logger.Error("Failed to load URLs from storage", zap.Error(err))
		return
	}

	urls = slices.DeleteFunc(urls, func(u *entity.URLRecord) bool {
		return u == nil
	})
	for _, u := range urls {
		if u.Clicks == nil {
			u.Clicks = []entity.ClickEvent{}
		}
	}

	r.urls = urls
	r.logger.Info("Loaded URLs from storage", zap.Int("count", len(r.urls)))
}

// persist must be called with r.mu held.
func (r *Registry) persist(ctx context.Context) {
	data, err := json.Marshal(r.urls)
	if err != nil {
		r.logger.Error("Failed to save URLs to storage", zap.Error(err))
		return
	}

	if err := r.storage.Save(context.WithoutCancel(ctx), data); err != nil {
		r.logger.Error("Failed to save URLs to storage", zap.Error(err))
		return
	}

	r.logger.Info("Saved URLs to storage", zap.Int("count", len(r.urls)))
}

func (r *Registry) findByCode(shortCode string) *entity.URLRecord {
	for _, u := range r.urls {
		if u.ShortCode == shortCode {
			return u
		}
	}
	return nil
}

func (r *Registry) findByID(id string) *entity.URLRecord {
	for _, u := range r.urls {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// CreateBatch validates every submission and, only if all of them pass,
// appends the new records in input order and persists the collection.
// A rejected submission is reported as *entity.SubmissionError.
func (r *Registry) CreateBatch(ctx context.Context, subs []entity.Submission) ([]entity.URLRecord, error) {
	const op = "registry.Registry.CreateBatch"

	r.logger.Info("Creating shortened URLs", zap.Int("count", len(subs)))

	if len(subs) > MaxBatchSize {
		r.logger.Error("Cannot create more than 5 URLs at once", zap.Int("count", len(subs)))
		return nil, fmt.Errorf("%s: %w", op, entity.ErrTooManyRequests)
	}

	if len(subs) == 0 {
		return []entity.URLRecord{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taken := make(map[string]struct{}, len(r.urls)+len(subs))
	for _, u := range r.urls {
		taken[u.ShortCode] = struct{}{}
	}

	staged := make([]*entity.URLRecord, 0, len(subs))

	for i, sub := range subs {
		rec, err := r.stage(sub, taken)
		if err != nil {
			r.logger.Error("Failed to create shortened URL",
				zap.Int("index", i),
				zap.String("originalUrl", sub.OriginalURL),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%s: %w", op, &entity.SubmissionError{Index: i, Err: err})
		}

		taken[rec.ShortCode] = struct{}{}
		staged = append(staged, rec)
	}

	r.urls = append(r.urls, staged...)

	res := make([]entity.URLRecord, 0, len(staged))
	for _, rec := range staged {
		r.logger.Info("Created shortened URL",
			zap.String("shortCode", rec.ShortCode),
			zap.String("originalUrl", rec.OriginalURL),
			zap.Time("expiresAt", rec.ExpiresAt),
		)
		res = append(res, rec.Clone())
	}

	r.persist(ctx)

	return res, nil
}

func (r *Registry) stage(sub entity.Submission, taken map[string]struct{}) (*entity.URLRecord, error) {
	if err := r.validate.Var(sub.OriginalURL, "required,url"); err != nil {
		return nil, entity.ErrInvalidURL
	}

	shortCode := sub.CustomShortcode
	if shortCode != "" {
		if err := r.validate.Var(shortCode, shortCodeRule); err != nil {
			return nil, entity.ErrInvalidShortcode
		}
		if _, ok := taken[shortCode]; ok {
			return nil, entity.ErrShortcodeTaken
		}
	}

	validity, err := validityDuration(sub.ValidityMinutes)
	if err != nil {
		return nil, err
	}

	if shortCode == "" {
		for {
			shortCode, err = r.gen.ShortCode()
			if err != nil {
				return nil, fmt.Errorf("failed to generate short code: %w", err)
			}
			if _, ok := taken[shortCode]; !ok {
				break
			}
		}
	}

	id, err := r.gen.ID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	createdAt := r.now()

	return &entity.URLRecord{
		ID:          id,
		OriginalURL: sub.OriginalURL,
		ShortCode:   shortCode,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(validity),
		Clicks:      []entity.ClickEvent{},
	}, nil
}

func validityDuration(minutes *float64) (time.Duration, error) {
	if minutes == nil {
		return DefaultValidity, nil
	}

	m := *minutes
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return 0, entity.ErrInvalidValidity
	}

	// float64(math.MaxInt64) rounds up to 2^63, so >= rejects the overflow.
	d := m * float64(time.Minute)
	if d >= math.MaxInt64 || d < 1 {
		return 0, entity.ErrInvalidValidity
	}

	return time.Duration(d), nil
}

// Resolve returns the original URL for shortCode and records a click.
// Expired or unknown codes yield entity.ErrNotFound.
func (r *Registry) Resolve(ctx context.Context, shortCode string, visit entity.Visit) (string, error) {
	const op = "registry.Registry.Resolve"

	source := visit.Source
	if source == "" {
		source = DefaultSource
	}

	r.logger.Info("Redirect attempt", zap.String("shortCode", shortCode), zap.String("source", source))

	clickedAt := r.now()

	r.mu.Lock()
	u := r.lookupActive(shortCode, clickedAt)
	if u == nil {
		r.mu.Unlock()
		r.logger.Error("URL not found or expired", zap.String("shortCode", shortCode))
		return "", fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}
	id := u.ID
	r.mu.Unlock()

	location := r.locate(ctx, visit.IP)

	r.mu.Lock()
	defer r.mu.Unlock()

	u = r.findByID(id)
	if u == nil {
		r.logger.Error("URL not found or expired", zap.String("shortCode", shortCode))
		return "", fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}

	u.Clicks = append(u.Clicks, entity.ClickEvent{
		Timestamp: clickedAt,
		Source:    source,
		Location:  location,
		UserAgent: visit.UserAgent,
	})

	r.persist(ctx)

	r.logger.Info("Successful redirect",
		zap.String("shortCode", shortCode),
		zap.String("originalUrl", u.OriginalURL),
		zap.Int("totalClicks", len(u.Clicks)),
	)

	return u.OriginalURL, nil
}

// lookupActive must be called with r.mu held.
func (r *Registry) lookupActive(shortCode string, now time.Time) *entity.URLRecord {
	u := r.findByCode(shortCode)
	if u == nil {
		r.logger.Warn("Short code not found", zap.String("shortCode", shortCode))
		return nil
	}

	if u.IsExpired(now) {
		r.logger.Warn("Short URL expired", zap.String("shortCode", shortCode), zap.Time("expiresAt", u.ExpiresAt))
		return nil
	}

	return u
}

func (r *Registry) locate(ctx context.Context, ip string) string {
	if r.locator == nil {
		return entity.UnknownLocation
	}

	ctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	loc, err := r.locator.Locate(ctx, ip)
	if err != nil {
		r.logger.Warn("Failed to get location info", zap.Error(err))
		return entity.UnknownLocation
	}

	return loc.String()
}

// Get returns the record for shortCode without recording a click.
func (r *Registry) Get(ctx context.Context, shortCode string) (entity.URLRecord, error) {
	const op = "registry.Registry.Get"

	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.lookupActive(shortCode, r.now())
	if u == nil {
		return entity.URLRecord{}, fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}

	return u.Clone(), nil
}

// List returns copies of all records, expired ones included, newest first.
func (r *Registry) List(ctx context.Context) []entity.URLRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshot(func(*entity.URLRecord) bool { return true })
}

// ListActive returns copies of the records that have not expired, newest first.
func (r *Registry) ListActive(ctx context.Context) []entity.URLRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	return r.snapshot(func(u *entity.URLRecord) bool { return !u.IsExpired(now) })
}

func (r *Registry) snapshot(keep func(*entity.URLRecord) bool) []entity.URLRecord {
	res := make([]entity.URLRecord, 0, len(r.urls))
	for _, u := range r.urls {
		if keep(u) {
			res = append(res, u.Clone())
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	return res
}

func (r *Registry) Stats(ctx context.Context) entity.Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	var stats entity.Stats
	for _, u := range r.urls {
		stats.TotalURLs++
		if !u.IsExpired(now) {
			stats.ActiveURLs++
		}
		stats.TotalClicks += len(u.Clicks)
	}

	return stats
}

// Delete removes the record with the given id. Unknown ids are ignored.
func (r *Registry) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.urls, func(u *entity.URLRecord) bool {
		return u.ID == id
	})
	if idx < 0 {
		r.logger.Warn("URL not found for deletion", zap.String("id", id))
		return
	}

	r.urls = slices.Delete(r.urls, idx, idx+1)
	r.logger.Info("Deleted URL", zap.String("id", id))

	r.persist(ctx)
}

// ShortURL returns the external form of shortCode under baseURL.
func ShortURL(baseURL, shortCode string) string {
	return strings.TrimRight(baseURL, "/") + "/" + shortCode
}
