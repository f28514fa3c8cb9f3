package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Faker produces random scalar values for the default column generators.
// All randomness flows through a single *rand.Rand so a fixed seed gives a
// reproducible run.
type Faker struct {
	rand    *rand.Rand
	counter int
}

func NewFaker(seed int64) *Faker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Faker{
		rand: rand.New(rand.NewSource(seed)),
	}
}

var (
	firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry", "Ivy", "Jack", "Karen", "Leo", "Mona", "Nina"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Taylor", "Thomas"}
	domains    = []string{"example.com", "test.com", "demo.com", "mail.com"}
	sentences  = []string{
		"This is a sample text generated for testing purposes.",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		"The quick brown fox jumps over the lazy dog.",
		"Software development requires careful planning and execution.",
		"Database design is crucial for application performance.",
		"Modern systems depend on reliable test fixtures.",
	}
	words = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa"}
)

func (f *Faker) IntBetween(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + f.rand.Int63n(max-min+1)
}

func (f *Faker) Float(max float64) float64 {
	return f.rand.Float64() * max
}

func (f *Faker) Bool(trueRatio float64) bool {
	return f.rand.Float64() < trueRatio
}

func (f *Faker) FirstName() string {
	return firstNames[f.rand.Intn(len(firstNames))]
}

func (f *Faker) LastName() string {
	return lastNames[f.rand.Intn(len(lastNames))]
}

func (f *Faker) FullName() string {
	return f.FirstName() + " " + f.LastName()
}

func (f *Faker) Email() string {
	f.counter++
	return fmt.Sprintf("user%d_%d@%s", f.counter, f.rand.Intn(100000), domains[f.rand.Intn(len(domains))])
}

func (f *Faker) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", f.rand.Intn(1000), f.rand.Intn(1000), f.rand.Intn(10000))
}

func (f *Faker) UUID() string {
	return uuid.Must(uuid.NewRandomFromReader(f.rand)).String()
}

// Code returns an uppercase alphabetic code of exactly n characters, used for
// very short string columns where prose would not fit.
func (f *Faker) Code(n int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(letters[f.rand.Intn(len(letters))])
	}
	return b.String()
}

// Text returns prose-like text truncated to maxLen characters.
func (f *Faker) Text(maxLen int) string {
	if maxLen <= 0 {
		maxLen = 50
	}
	var b strings.Builder
	for b.Len() < maxLen {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentences[f.rand.Intn(len(sentences))])
	}
	out := b.String()
	if len(out) > maxLen {
		out = strings.TrimSpace(out[:maxLen])
	}
	return out
}

func (f *Faker) Word() string {
	return words[f.rand.Intn(len(words))]
}

// Timestamp returns a random time inside the window [now-years, now].
func (f *Faker) Timestamp(years int) time.Time {
	if years <= 0 {
		years = 10
	}
	now := time.Now()
	span := int64(years) * 365 * 24 * 60 * 60
	return now.Add(-time.Duration(f.rand.Int63n(span)) * time.Second)
}

func (f *Faker) Choice(choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[f.rand.Intn(len(choices))]
}

func (f *Faker) Intn(n int) int {
	return f.rand.Intn(n)
}

// Perm is used for sampling without replacement from key pools.
func (f *Faker) Perm(n int) []int {
	return f.rand.Perm(n)
}
