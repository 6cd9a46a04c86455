//go:build wasip1

package main

import (
	"strconv"

	"github.com/extism/go-pdk"
)

//go:wasmexport configure
func Configure() int32 {
	if err := configure(pdk.Input()); err != nil {
		pdk.SetError(err)
		return 1
	}
	return 0
}

//go:wasmexport process
func Process() int32 {
	out, err := process(pdk.InputString())
	if err != nil {
		pdk.SetError(err)
		return 1
	}
	pdk.Output(out)
	return 0
}

//go:wasmexport count
func Count() int32 {
	n, err := count()
	if err != nil {
		pdk.SetError(err)
		return 1
	}
	pdk.OutputString(strconv.Itoa(n))
	return 0
}

//go:wasmexport lines
func Lines() int32 {
	out, err := lines()
	if err != nil {
		pdk.SetError(err)
		return 1
	}
	pdk.Output(out)
	return 0
}
