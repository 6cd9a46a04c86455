//go:build js

package main

//go:generate gopherjs build --minify

import (
	"log"

	"github.com/gopherjs/gopherjs/js"
	"github.com/wbrown/cleanser"
)

func throw(err error) {
	panic(js.Global.Get("Error").New(err.Error()))
}

// NewCleanser returns a JavaScript object with `process(text)`, `count()`,
// `lines()` and `text()` methods. Errors are thrown as JavaScript Errors.
func NewCleanser(minLength int, keywords []string) *js.Object {
	b, err := newBinding(minLength, keywords)
	if err != nil {
		throw(err)
	}
	obj := js.Global.Get("Object").New()
	obj.Set("process", func(text string) int {
		accepted, err := b.process(text)
		if err != nil {
			throw(err)
		}
		return accepted
	})
	obj.Set("count", b.count)
	obj.Set("sources", func() int { return b.sources })
	obj.Set("lines", b.c.Lines)
	obj.Set("text", b.text)
	return obj
}

func init() {
	js.Module.Get("exports").Set("newCleanser", NewCleanser)
	js.Module.Get("exports").Set("defaultMinLength", cleanser.DefaultMinLength)
	log.Printf("Corpus Cleanser Loaded")
}
