package main

import (
	"bytes"
	"errors"
	"strings"

	msgpack "github.com/vmihailenco/msgpack/v5"
	"github.com/wbrown/cleanser"
)

// Options configures the plugin's Cleanser.
type Options struct {
	MinLength *int     `msgpack:"min_length"`
	Keywords  []string `msgpack:"keywords"`
	Identity  string   `msgpack:"identity"`
}

// ProcessResult is returned for every processed text.
type ProcessResult struct {
	Accepted  int `msgpack:"accepted"`
	Count     int `msgpack:"count"`
	Read      int `msgpack:"read"`
	Short     int `msgpack:"short"`
	Keyword   int `msgpack:"keyword"`
	Duplicate int `msgpack:"duplicate"`
}

var errNotConfigured = errors.New("cleanser not configured, call configure")

// Plugin state lives for as long as the host keeps the instance.
var current *cleanser.Cleanser

// configure replaces the current Cleanser with one built from msgpack
// encoded Options. Empty input selects the defaults.
func configure(input []byte) error {
	var opts Options
	if len(input) > 0 {
		if err := msgpack.Unmarshal(input, &opts); err != nil {
			return err
		}
	}
	cfg := cleanser.DefaultConfig()
	if opts.MinLength != nil {
		cfg.MinLength = *opts.MinLength
	}
	cfg.Keywords = opts.Keywords
	identity, err := cleanser.ParseIdentity(opts.Identity)
	if err != nil {
		return err
	}
	cfg.Identity = identity
	c, err := cleanser.New(cfg)
	if err != nil {
		return err
	}
	current = c
	return nil
}

// process runs text through the current Cleanser, returning a msgpack
// encoded ProcessResult.
func process(text string) ([]byte, error) {
	if current == nil {
		return nil, errNotConfigured
	}
	accepted, err := current.ProcessNamedReader(strings.NewReader(text),
		"<input>")
	if err != nil {
		return nil, err
	}
	stats := current.Stats()
	return msgpack.Marshal(&ProcessResult{
		Accepted:  accepted,
		Count:     current.Count(),
		Read:      stats.Read,
		Short:     stats.Short,
		Keyword:   stats.Keyword,
		Duplicate: stats.Duplicate,
	})
}

// lines returns the accepted lines as they would be saved.
func lines() ([]byte, error) {
	if current == nil {
		return nil, errNotConfigured
	}
	var buf bytes.Buffer
	if _, err := current.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func count() (int, error) {
	if current == nil {
		return 0, errNotConfigured
	}
	return current.Count(), nil
}

func main() {}
