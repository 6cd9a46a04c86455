package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/cleanser"
)

func TestRepl(t *testing.T) {
	c, err := cleanser.NewCleanser(10, []string{"spam"})
	require.NoError(t, err)
	in := strings.NewReader("Hello, wonderful world # greeting\n" +
		"tiny\n" +
		"spam spam spam spam\n" +
		"hello, wonderful world")
	out := &bytes.Buffer{}
	require.NoError(t, repl(c, in, out))

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, `>>> "hello, wonderful world" 22 accepted (total 1)`,
		lines[0])
	assert.Equal(t, `>>> "tiny" 4 short (total 1)`, lines[1])
	assert.Equal(t, `>>> "spam spam spam spam" 19 keyword (total 1)`,
		lines[2])
	assert.Equal(t, `>>> "hello, wonderful world" 22 duplicate (total 1)`,
		lines[3])
	assert.Equal(t, 1, c.Count())
}

func TestRepl_EmptyInput(t *testing.T) {
	c, err := cleanser.NewCleanser(0, nil)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	require.NoError(t, repl(c, strings.NewReader(""), out))
	assert.Equal(t, ">>> \n", out.String())
}
