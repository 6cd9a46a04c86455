package main

import (
	"strings"

	"github.com/wbrown/cleanser"
)

// binding is the JavaScript-facing view of a Cleanser. Text handed to it is
// treated as the contents of one file.
// sources counts the texts processed, including ones that failed.
type binding struct {
	c       *cleanser.Cleanser
	sources int
}

func newBinding(minLength int, keywords []string) (*binding, error) {
	c, err := cleanser.NewCleanser(minLength, keywords)
	if err != nil {
		return nil, err
	}
	return &binding{c: c}, nil
}

func (b *binding) process(text string) (int, error) {
	b.sources++
	return b.c.ProcessNamedReader(strings.NewReader(text), "<text>")
}

func (b *binding) count() int {
	return b.c.Count()
}

// text joins the accepted lines as they would be saved.
func (b *binding) text() string {
	var sb strings.Builder
	b.c.WriteTo(&sb)
	return sb.String()
}

func main() {

}
