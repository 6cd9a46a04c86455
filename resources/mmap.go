//go:build !wasip1 && !js

package resources

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// mapFile maps a keyword list read-only. The bytes are only valid until
// release is called.
func mapFile(file *os.File) (contents []byte, release func() error,
	err error) {
	stat, statErr := file.Stat()
	if statErr != nil {
		return nil, nil, statErr
	}
	// Zero length mappings are rejected by the kernel.
	if stat.Size() == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	fileMmap, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	if mmapErr != nil {
		return nil, nil, mmapErr
	}
	return fileMmap, fileMmap.Unmap, nil
}
