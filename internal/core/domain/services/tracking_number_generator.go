package services

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

const (
	TrackingNumberPrefix = "CH"

	trackingAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingSuffixSize = 3
	trackingTimeModulo = 1_000_000
)

// TrackingNumberGenerator produces tracking numbers of the form
// CH + 6 time digits + 3 upper-case alphanumerics, e.g. CH482913K7Q.
//
// Business rules:
//   - Two calls on the same generator never share the time digits within a
//     million-millisecond window: the clock is logical and advances by one when
//     calls land on the same millisecond
//   - The random suffix separates values across restarts and generators
//   - Generation never fails
//
// The time digits are the Unix milliseconds modulo one million, so they wrap about
// every 16 minutes 40 seconds. Two numbers generated a multiple of that window apart
// differ only when their suffixes do (36^3 values). Uniqueness is therefore enforced
// by the stores, which reject a taken number with ports.ErrDuplicateKey, and the
// order state machine retries the transition with a fresh number.
//
// A generator is safe for concurrent use. The zero value is not usable, build it
// with NewTrackingNumberGenerator.
type TrackingNumberGenerator struct {
	mu     sync.Mutex
	lastMs int64

	now   func() time.Time
	randN func(n int) int
}

func NewTrackingNumberGenerator() *TrackingNumberGenerator {
	return NewTrackingNumberGeneratorWithSource(time.Now, rand.IntN)
}

// NewTrackingNumberGeneratorWithSource lets tests pin the clock and the suffix.
func NewTrackingNumberGeneratorWithSource(now func() time.Time, randN func(n int) int) *TrackingNumberGenerator {
	return &TrackingNumberGenerator{now: now, randN: randN}
}

// Generate returns the next tracking number.
func (g *TrackingNumberGenerator) Generate() string {
	ms := g.tick()

	var sb strings.Builder
	sb.Grow(len(TrackingNumberPrefix) + 6 + trackingSuffixSize)
	sb.WriteString(TrackingNumberPrefix)
	fmt.Fprintf(&sb, "%06d", ms%trackingTimeModulo)
	for range trackingSuffixSize {
		sb.WriteByte(trackingAlphabet[g.randN(len(trackingAlphabet))])
	}
	return sb.String()
}

func (g *TrackingNumberGenerator) tick() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.lastMs {
		ms = g.lastMs + 1
	}
	g.lastMs = ms
	return ms
}
