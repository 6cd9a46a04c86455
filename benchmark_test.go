package cleanser

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"
)

var benchWords = []string{"the", "a", "corpus", "line", "training", "data",
	"model", "clean", "token", "with", "some", "words", "and", "more"}

// syntheticCorpus builds a newline-delimited corpus where roughly a quarter
// of the lines repeat an earlier one and some are too short to keep.
func syntheticCorpus(lines int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 && rng.Intn(4) == 0 {
			fmt.Fprintf(&sb, "Line %d repeats # dup\n", rng.Intn(i))
			continue
		}
		numWords := 1 + rng.Intn(12)
		fmt.Fprintf(&sb, "Line %d", i)
		for w := 0; w < numWords; w++ {
			sb.WriteString(" " + benchWords[rng.Intn(len(benchWords))])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func BenchmarkCleanser_ProcessReader(b *testing.B) {
	b.StopTimer()
	corpus := syntheticCorpus(200000, 42)
	for _, id := range []Identity{IdentityHashed, IdentityExact} {
		b.Run(id.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				cfg := DefaultConfig()
				cfg.Identity = id
				cfg.Keywords = []string{"badword", "spam", "lorem ipsum"}
				cfg.Logger = quietLogger
				c, _ := New(cfg)
				start := time.Now()
				b.StartTimer()
				if _, err := c.ProcessReader(strings.NewReader(corpus)); err != nil {
					b.Fatal(err)
				}
				b.StopTimer()
				elapsed := time.Since(start)
				b.ReportMetric(float64(len(corpus))/elapsed.Seconds(),
					"bytes/sec")
				b.ReportMetric(float64(c.Count()), "accepted")
			}
		})
	}
}

func BenchmarkKeywordMatcher_Match(b *testing.B) {
	b.StopTimer()
	keywords := make([]string, 0, 1000)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		keywords = append(keywords, fmt.Sprintf("%s%d%s",
			benchWords[rng.Intn(len(benchWords))], i,
			benchWords[rng.Intn(len(benchWords))]))
	}
	matcher, err := NewKeywordMatcher(keywords)
	if err != nil {
		b.Fatal(err)
	}
	lines := strings.Split(syntheticCorpus(10000, 3), "\n")
	b.StartTimer()
	hits := 0
	for i := 0; i < b.N; i++ {
		if matcher.Match(lines[i%len(lines)]) {
			hits++
		}
	}
	b.StopTimer()
	b.Logf("%d hits over %d lines", hits, b.N)
}
