package cleanser

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

const DefaultMinLength = 20
const READBUF_SZ = 1024 * 1024

// Verdict is the outcome of feeding a single line to a Cleanser.
type Verdict uint8

const (
	Accepted Verdict = iota
	RejectedShort
	RejectedKeyword
	RejectedDuplicate
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case RejectedShort:
		return "short"
	case RejectedKeyword:
		return "keyword"
	case RejectedDuplicate:
		return "duplicate"
	default:
		return fmt.Sprintf("Verdict(%d)", uint8(v))
	}
}

// Stats
// Cumulative line counters over the lifetime of a Cleanser. Accepted always
// equals Count().
type Stats struct {
	Read      int
	Accepted  int
	Short     int
	Keyword   int
	Duplicate int
}

// Config
// The construction parameters of a Cleanser. Use DefaultConfig to start
// from the defaults.
type Config struct {
	MinLength int          // Minimum key length in runes.
	Keywords  []string     // Disallowed substrings; none disables filtering.
	Identity  Identity     // Dedup identifier strategy.
	Logger    *slog.Logger // Defaults to slog.Default().
}

func DefaultConfig() Config {
	return Config{
		MinLength: DefaultMinLength,
		Identity:  IdentityHashed,
	}
}

// Cleanser
// Accumulates the distinct, filtered lines of every source fed to it. A
// Cleanser is not safe for concurrent use; callers sharing one must
// serialize access themselves.
type Cleanser struct {
	minLength  int
	normalizer *Normalizer
	matcher    *KeywordMatcher
	seen       KeySet
	lines      []string
	stats      Stats
	log        *slog.Logger
}

// New
// Returns a Cleanser for the given configuration. Keywords are lowercased
// the same way lines are before being compiled.
func New(cfg Config) (*Cleanser, error) {
	if cfg.MinLength < 0 {
		return nil, &ConfigError{Field: "min_length",
			Reason: fmt.Sprintf("must be non-negative, got %d", cfg.MinLength)}
	}
	seen, err := NewKeySet(cfg.Identity)
	if err != nil {
		return nil, err
	}
	normalizer := NewNormalizer()
	var matcher *KeywordMatcher
	if len(cfg.Keywords) > 0 {
		patterns := make([]string, len(cfg.Keywords))
		for idx, k := range cfg.Keywords {
			patterns[idx] = normalizer.Pattern(k)
		}
		if matcher, err = NewKeywordMatcher(patterns); err != nil {
			return nil, &ConfigError{Field: "keywords",
				Reason: "cannot compile matcher", Err: err}
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleanser{
		minLength:  cfg.MinLength,
		normalizer: normalizer,
		matcher:    matcher,
		seen:       seen,
		lines:      make([]string, 0),
		log:        logger,
	}, nil
}

// NewCleanser
// Shorthand for New with the default identity strategy.
func NewCleanser(minLength int, keywords []string) (*Cleanser, error) {
	cfg := DefaultConfig()
	cfg.MinLength = minLength
	cfg.Keywords = keywords
	return New(cfg)
}

func (c *Cleanser) MinLength() int {
	return c.minLength
}

// Keywords returns the number of distinct keywords being filtered.
func (c *Cleanser) Keywords() int {
	return c.matcher.Len()
}

// Feed
// Runs one raw line through normalization, the length, keyword and
// duplicate filters, storing it if accepted.
func (c *Cleanser) Feed(line string) Verdict {
	c.stats.Read++
	key, candidate := c.normalizer.Normalize(line)
	if utf8.RuneCountInString(key) < c.minLength {
		c.stats.Short++
		return RejectedShort
	}
	if keyword, found := c.matcher.Find(key); found {
		c.stats.Keyword++
		c.log.Debug("keyword rejected line", "keyword", keyword)
		return RejectedKeyword
	}
	if !c.seen.Insert(key) {
		c.stats.Duplicate++
		return RejectedDuplicate
	}
	c.lines = append(c.lines, candidate)
	c.stats.Accepted++
	return Accepted
}

// ProcessLines feeds lines in order, returning how many were accepted.
func (c *Cleanser) ProcessLines(lines ...string) int {
	accepted := 0
	for _, line := range lines {
		if c.Feed(line) == Accepted {
			accepted++
		}
	}
	return accepted
}

// Process
// Streams the file at path line by line, returning how many of its lines
// were accepted. Lines accepted before a read failure are kept.
func (c *Cleanser) Process(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()
	return c.processReader(file, path)
}

// ProcessReader
// Like Process, but for an already opened source.
func (c *Cleanser) ProcessReader(r io.Reader) (int, error) {
	return c.processReader(r, "<reader>")
}

// ProcessNamedReader is ProcessReader with a source name for errors and logs.
func (c *Cleanser) ProcessNamedReader(r io.Reader, name string) (int, error) {
	return c.processReader(r, name)
}

func (c *Cleanser) processReader(r io.Reader, source string) (int, error) {
	begin := time.Now()
	reader := bufio.NewReaderSize(r, READBUF_SZ)
	accepted, lineNo := 0, 0
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return accepted, &IOError{Op: "read", Path: source,
				Line: lineNo + 1, Err: err}
		}
		if len(raw) > 0 {
			lineNo++
			raw = strings.TrimSuffix(raw, "\n")
			raw = strings.TrimSuffix(raw, "\r")
			if !utf8.ValidString(raw) {
				return accepted, &IOError{Op: "read", Path: source,
					Line: lineNo, Err: ErrInvalidUTF8}
			}
			if c.Feed(raw) == Accepted {
				accepted++
			}
		}
		if err == io.EOF {
			break
		}
	}
	c.log.Info("processed source",
		"source", source,
		"read", lineNo,
		"accepted", accepted,
		"total", len(c.lines),
		"elapsed", time.Since(begin))
	return accepted, nil
}

// Count returns the number of lines accepted so far.
func (c *Cleanser) Count() int {
	return len(c.lines)
}

// Lines returns a copy of the accepted lines, in acceptance order.
func (c *Cleanser) Lines() []string {
	lines := make([]string, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cleanser) Stats() Stats {
	return c.stats
}

// WriteTo
// Writes every accepted line followed by a newline, in acceptance order.
func (c *Cleanser) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, line := range c.lines {
		n, err := io.WriteString(w, line+"\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Save
// Writes the accepted lines to path, creating or truncating it.
func (c *Cleanser) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	writer := bufio.NewWriter(file)
	if _, err := c.WriteTo(writer); err != nil {
		file.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	c.log.Info("saved accepted lines", "path", path, "lines", len(c.lines))
	return nil
}
