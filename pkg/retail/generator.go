package retail

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed int64 = 42

// pcgStream is the fixed second word of the PCG state; only the seed varies.
const pcgStream = 0x9e3779b97f4a7c15

// Generator produces referentially consistent retail data from a seeded
// random stream.
//
// A Generator is not safe for concurrent use. Separate instances share no
// mutable state and may run in parallel.
type Generator struct {
	seed     int64
	rng      *rand.Rand
	now      time.Time
	avgItems int

	customers idCache[struct{}]
	products  idCache[decimal.Decimal]
}

// Option configures a Generator.
type Option func(*Generator)

// WithReferenceTime fixes the instant every relative window ("5 years ago",
// "now") is measured from. It is truncated to whole seconds, UTC.
func WithReferenceTime(t time.Time) Option {
	return func(g *Generator) {
		g.now = t.UTC().Truncate(time.Second)
	}
}

// WithAvgItemsPerOrder sets the mean of the per-order item count.
func WithAvgItemsPerOrder(n int) Option {
	return func(g *Generator) {
		g.avgItems = n
	}
}

// New returns a Generator seeded with seed. Without WithReferenceTime the
// reference time is the start of the current UTC day, so two generators
// created on the same day produce identical output.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		now:      time.Now().UTC().Truncate(24 * time.Hour),
		avgItems: DefaultAvgItemsPerOrder,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Seed(seed)
	return g
}

// Seed resets the random stream to the deterministic sequence for v.
// Cached customers and products are kept.
func (g *Generator) Seed(v int64) {
	g.seed = v
	g.rng = rand.New(rand.NewPCG(uint64(v), pcgStream))
}

// CurrentSeed returns the seed of the active stream.
func (g *Generator) CurrentSeed() int64 { return g.seed }

// ReferenceTime returns the generator's notion of "now".
func (g *Generator) ReferenceTime() time.Time { return g.now }

// Reset drops the customer and product caches.
func (g *Generator) Reset() {
	g.customers.reset()
	g.products.reset()
}

// ParseSeed parses a textual seed. Anything other than a base-10 integer
// that fits in int64 is an ErrInvalidConfiguration.
func ParseSeed(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: seed %q is not an integer", ErrInvalidConfiguration, s)
	}
	return v, nil
}

func checkCount(what string, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: %s count must be >= 0, got %d", ErrInvalidArgument, what, count)
	}
	return nil
}

// idCache remembers the identifiers of the most recent batch, in
// generation order, with an optional payload per id.
type idCache[V any] struct {
	ids  []string
	byID map[string]V
}

func (c *idCache[V]) reset() {
	c.ids = nil
	c.byID = nil
}

func (c *idCache[V]) replace(n int) {
	c.ids = make([]string, 0, n)
	c.byID = make(map[string]V, n)
}

func (c *idCache[V]) add(id string, v V) {
	c.ids = append(c.ids, id)
	c.byID[id] = v
}

func (c *idCache[V]) lookup(id string) (V, bool) {
	v, ok := c.byID[id]
	return v, ok
}

// snapshot returns a copy of the cached identifiers.
func (c *idCache[V]) snapshot() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// CachedCustomerIDs returns the identifiers of the last customer batch.
func (g *Generator) CachedCustomerIDs() []string { return g.customers.snapshot() }

// CachedProductIDs returns the identifiers of the last product batch.
func (g *Generator) CachedProductIDs() []string { return g.products.snapshot() }

// Time helpers. All draws are in whole seconds or whole days so that output
// is stable across platforms.

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dateBetween draws a calendar date uniformly in [from, to].
func (g *Generator) dateBetween(from, to time.Time) time.Time {
	from, to = startOfDay(from), startOfDay(to)
	days := int(to.Sub(from).Hours() / 24)
	if days <= 0 {
		return from
	}
	return from.AddDate(0, 0, g.rng.IntN(days+1))
}

// atRandomTime places a date at a uniformly drawn time of day.
func (g *Generator) atRandomTime(day time.Time) time.Time {
	return day.Add(time.Duration(g.rng.IntN(24*60*60)) * time.Second)
}

// dateTimeBetween draws an instant uniformly in [from, to], to the second.
func (g *Generator) dateTimeBetween(from, to time.Time) time.Time {
	secs := int64(to.Sub(from) / time.Second)
	if secs <= 0 {
		return from
	}
	return from.Add(time.Duration(g.rng.Int64N(secs+1)) * time.Second)
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// Money helpers.

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// quantize rounds to cents, half to even.
func quantize(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// centsBetween draws an exact two-decimal amount uniformly in [lo, hi].
func (g *Generator) centsBetween(lo, hi int64) decimal.Decimal {
	return decimal.New(lo+g.rng.Int64N(hi-lo+1), -2)
}

func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}
