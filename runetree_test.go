package cleanser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Common UTF-8 read as CP-1252 sequences, with what they should have been.
var mojibakeTable = map[string]string{
	"â€š": "‚",
	"â€ž": "„",
	"â€¦": "…",
	"â€°": "‰",
	"â€˜": "‘",
	"â€™": "’",
	"â€œ": "“",
	"â€“": "–",
	"â€”": "—",
	"â„¢": "™",
	"Ã©":  "é",
	"Ã¨":  "è",
	"Ã¶":  "ö",
	"Ã¼":  "ü",
}

type matcherTest struct {
	Name     string
	Keywords []string
	Input    string
	Expected bool
}

var matcherTests = []matcherTest{
	{"no keywords", nil, "anything at all", false},
	{"exact", []string{"badword"}, "badword", true},
	{"embedded", []string{"badword"}, "this has a badwordy tail", true},
	{"absent", []string{"badword"}, "this is clean", false},
	{"prefix only", []string{"badword"}, "badwor", false},
	{"overlapping fail link", []string{"abcd", "bce"}, "xxabcexx", true},
	{"suffix of a longer partial", []string{"she", "he"}, "sh he", true},
	{"keyword inside another", []string{"hers", "e"}, "her", true},
	{"near misses", []string{"abab", "bac"}, "aba ba c", false},
	{"multibyte", []string{"ünïcödé"}, "some ünïcödé text", true},
	{"cjk", []string{"나쁜말"}, "이 문장에는 나쁜말이 있다", true},
	{"cjk absent", []string{"나쁜말"}, "이 문장은 깨끗하다", false},
	{"empty text", []string{"a"}, "", false},
}

func TestKeywordMatcher_Match(t *testing.T) {
	for _, test := range matcherTests {
		t.Run(test.Name, func(t *testing.T) {
			matcher, err := NewKeywordMatcher(test.Keywords)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, matcher.Match(test.Input))
		})
	}
}

func TestKeywordMatcher_Find(t *testing.T) {
	matcher, err := NewKeywordMatcher([]string{"abcd", "bc", "cde"})
	require.NoError(t, err)
	keyword, found := matcher.Find("xabcde")
	assert.True(t, found)
	// `bc` completes before `abcd` or `cde` while scanning left to right.
	assert.Equal(t, "bc", keyword)

	_, found = matcher.Find("xyz")
	assert.False(t, found)
}

func TestKeywordMatcher_ManyChildren(t *testing.T) {
	// Enough siblings to push the root past the array threshold.
	keywords := make([]string, 0)
	for r := 'a'; r <= 'z'; r++ {
		keywords = append(keywords, string(r)+"!"+string(r))
	}
	matcher, err := NewKeywordMatcher(keywords)
	require.NoError(t, err)
	assert.Equal(t, 26, matcher.Len())
	assert.Nil(t, matcher.root.childsArr)
	assert.True(t, matcher.Match("hello q!q world"))
	assert.False(t, matcher.Match("hello q!r world"))
}

func TestKeywordMatcher_Duplicates(t *testing.T) {
	matcher, err := NewKeywordMatcher([]string{"dup", "dup", "other"})
	require.NoError(t, err)
	assert.Equal(t, 2, matcher.Len())
}

func TestKeywordMatcher_EmptyKeyword(t *testing.T) {
	_, err := NewKeywordMatcher([]string{"ok", ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errEmptyKeyword))
}

func TestKeywordMatcher_NilIsEmpty(t *testing.T) {
	var matcher *KeywordMatcher
	assert.Equal(t, 0, matcher.Len())
	assert.False(t, matcher.Match("anything"))
	assert.Equal(t, "", matcher.String())
}

func TestKeywordMatcher_Mojibake(t *testing.T) {
	normalizer := NewNormalizer()
	keywords := make([]string, 0, len(mojibakeTable))
	for garbled := range mojibakeTable {
		keywords = append(keywords, normalizer.Lower(garbled))
	}
	matcher, err := NewKeywordMatcher(keywords)
	require.NoError(t, err)
	for garbled, fixed := range mojibakeTable {
		line := "it" + garbled + "s a garbled line"
		key, _ := normalizer.Normalize(line)
		assert.True(t, matcher.Match(key), garbled)
		clean := "it" + fixed + "s a clean line"
		key, _ = normalizer.Normalize(clean)
		assert.False(t, matcher.Match(key), fixed)
	}
}

func TestRuneNode_String(t *testing.T) {
	matcher, err := NewKeywordMatcher([]string{"tea", "ten", "inn"})
	require.NoError(t, err)
	tree := matcher.String()
	t.Log("\n" + tree)
	assert.True(t, strings.HasPrefix(tree, "\n├─inn"))
	assert.Contains(t, tree, "└─te\n")
	assert.Contains(t, tree, "| ├─a")
	assert.Contains(t, tree, "| └─n")
}
