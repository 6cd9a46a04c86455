//go:build js || wasip1

package resources

import (
	"io"
	"os"
)

func mapFile(file *os.File) ([]byte, func() error, error) {
	contents, err := io.ReadAll(file)
	return contents, func() error { return nil }, err
}
