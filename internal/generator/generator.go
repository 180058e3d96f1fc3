// Package generator provides the random sources used to draw short codes and
// record identifiers.
package generator

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of characters generated short codes are drawn from.
	Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// ShortCodeLength is the length of generated short codes.
	ShortCodeLength = 6
)

// Nanoid draws short codes and ids from a cryptographically secure source.
type Nanoid struct{}

func NewNanoid() *Nanoid {
	return &Nanoid{}
}

func (g *Nanoid) ShortCode() (string, error) {
	const op = "generator.Nanoid.ShortCode"

	code, err := gonanoid.Generate(Alphabet, ShortCodeLength)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}

func (g *Nanoid) ID() (string, error) {
	const op = "generator.Nanoid.ID"

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate id: %w", op, err)
	}

	return id.String(), nil
}

// Seeded draws short codes and ids from a seeded pseudo-random source, so the
// same seed always yields the same sequence.
type Seeded struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSeeded(seed int64) *Seeded {
	return &Seeded{rnd: rand.New(rand.NewSource(seed))}
}

func (g *Seeded) ShortCode() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, ShortCodeLength)
	for i := range b {
		b[i] = Alphabet[g.rnd.Intn(len(Alphabet))]
	}

	return string(b), nil
}

func (g *Seeded) ID() (string, error) {
	const op = "generator.Seeded.ID"

	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate id: %w", op, err)
	}

	return id.String(), nil
}
