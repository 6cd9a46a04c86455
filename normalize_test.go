package cleanser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type NormalizeTest struct {
	Name      string
	Input     string
	Key       string
	Candidate string
}

var normalizeTests = []NormalizeTest{
	{"plain", "Hello World", "hello world", "Hello World"},
	{"comment stripped", "Keep this # drop that", "keep this", "Keep this"},
	{"only first marker counts", "a # b # c", "a", "a"},
	{"leading marker", "# all comment", "", ""},
	{"surrounding whitespace", " \t Padded Line \t ", "padded line",
		"Padded Line"},
	{"no-break space", "A\u00a0B\u00a0C", "a b c", "A B C"},
	{"tabs kept", "a\tb", "a\tb", "a\tb"},
	{"runs of spaces kept", "a   b", "a   b", "a   b"},
	{"unicode lowercase", "ÀÉÎÕÜ Straße", "àéîõü straße", "ÀÉÎÕÜ Straße"},
	{"cyrillic", "ПРИВЕТ Мир", "привет мир", "ПРИВЕТ Мир"},
	{"empty", "", "", ""},
}

func TestNormalize(t *testing.T) {
	normalizer := NewNormalizer()
	for _, test := range normalizeTests {
		key, candidate := normalizer.Normalize(test.Input)
		assert.Equal(t, test.Key, key, test.Name)
		assert.Equal(t, test.Candidate, candidate, test.Name)
	}
}

func TestNormalizerPattern(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "buy now", n.Pattern("Buy\u00a0NOW"))
	assert.Equal(t, "plain", n.Pattern("plain"))
}

func TestNormalizeIsDeterministic(t *testing.T) {
	for _, test := range normalizeTests {
		key1, cand1 := Normalize(test.Input)
		key2, cand2 := Normalize(test.Input)
		assert.Equal(t, key1, key2)
		assert.Equal(t, cand1, cand2)
	}
}
