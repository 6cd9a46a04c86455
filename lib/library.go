package main

/*
#include "library.h"
*/
import "C"
import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"unsafe"

	"github.com/wbrown/cleanser"
)

// handleEntry serializes calls on one Cleanser, which is not safe for
// concurrent use on its own.
type handleEntry struct {
	mu sync.Mutex
	c  *cleanser.Cleanser
}

var (
	handles    = make(map[int64]*handleEntry)
	nextHandle int64
	handlesMu  sync.RWMutex
)

var errBadHandle = errors.New("unknown cleanser handle")

func register(c *cleanser.Cleanser) int64 {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	nextHandle++
	handles[nextHandle] = &handleEntry{c: c}
	return nextHandle
}

func lookup(handle int64) (*handleEntry, error) {
	handlesMu.RLock()
	defer handlesMu.RUnlock()
	entry, ok := handles[handle]
	if !ok {
		return nil, errBadHandle
	}
	return entry, nil
}

func result(value int64, err error) C.CleanserResult {
	if err != nil {
		return C.CleanserResult{value: -1, message: C.CString(err.Error())}
	}
	return C.CleanserResult{value: C.int64_t(value)}
}

//export cleanser_new
// cleanser_new accepts a minimum length, a JSON array of keywords (or NULL)
// and an identity strategy name (or NULL for hashed), and returns a handle
// to a new Cleanser in the result value.
func cleanser_new(minLength C.int, keywordsJson *C.char,
	identity *C.char) C.CleanserResult {
	cfg := cleanser.DefaultConfig()
	cfg.MinLength = int(minLength)
	if keywordsJson != nil {
		if err := json.Unmarshal([]byte(C.GoString(keywordsJson)),
			&cfg.Keywords); err != nil {
			return result(0, &cleanser.ConfigError{Field: "keywords",
				Reason: "not a JSON array of strings", Err: err})
		}
	}
	if identity != nil {
		id, err := cleanser.ParseIdentity(C.GoString(identity))
		if err != nil {
			return result(0, err)
		}
		cfg.Identity = id
	}
	c, err := cleanser.New(cfg)
	if err != nil {
		return result(0, err)
	}
	return result(register(c), nil)
}

//export cleanser_process_file
// cleanser_process_file streams the file at path through the Cleanser,
// returning the number of its lines accepted.
func cleanser_process_file(handle C.int64_t, path *C.char) C.CleanserResult {
	entry, err := lookup(int64(handle))
	if err != nil {
		return result(0, err)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	accepted, err := entry.c.Process(C.GoString(path))
	if err != nil {
		return result(0, err)
	}
	return result(int64(accepted), nil)
}

//export cleanser_process_text
// cleanser_process_text treats text as the contents of a file.
func cleanser_process_text(handle C.int64_t, text *C.char) C.CleanserResult {
	entry, err := lookup(int64(handle))
	if err != nil {
		return result(0, err)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	accepted, err := entry.c.ProcessNamedReader(
		strings.NewReader(C.GoString(text)), "<text>")
	if err != nil {
		return result(0, err)
	}
	return result(int64(accepted), nil)
}

//export cleanser_count
// cleanser_count returns the number of accepted lines, or -1 for an unknown
// handle.
func cleanser_count(handle C.int64_t) C.int64_t {
	entry, err := lookup(int64(handle))
	if err != nil {
		return -1
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return C.int64_t(entry.c.Count())
}

//export cleanser_save
// cleanser_save writes the accepted lines to path. Returns NULL on success,
// otherwise a malloc'ed error message for the caller to free.
func cleanser_save(handle C.int64_t, path *C.char) *C.char {
	entry, err := lookup(int64(handle))
	if err != nil {
		return C.CString(err.Error())
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.c.Save(C.GoString(path)); err != nil {
		return C.CString(err.Error())
	}
	return nil
}

//export cleanser_free
// cleanser_free releases a handle, reporting whether it existed.
func cleanser_free(handle C.int64_t) C.bool {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	if _, ok := handles[int64(handle)]; !ok {
		return false
	}
	delete(handles, int64(handle))
	return true
}

//export cleanser_result_free
func cleanser_result_free(res *C.CleanserResult) {
	if res == nil || res.message == nil {
		return
	}
	C.free(unsafe.Pointer(res.message))
	res.message = nil
}

// The wrappers below simulate C calls from golang, and are here rather than
// in the test package as the test package is incompatible with CGo.

func cString(s *string) *C.char {
	if s == nil {
		return nil
	}
	return C.CString(*s)
}

func freeCString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func takeResult(res C.CleanserResult) (int64, error) {
	defer cleanser_result_free(&res)
	if res.message != nil {
		return int64(res.value), errors.New(C.GoString(res.message))
	}
	return int64(res.value), nil
}

func wrapNew(minLength int, keywordsJson *string, identity *string) (int64,
	error) {
	keywordsC, identityC := cString(keywordsJson), cString(identity)
	defer freeCString(keywordsC)
	defer freeCString(identityC)
	return takeResult(cleanser_new(C.int(minLength), keywordsC, identityC))
}

func wrapProcessFile(handle int64, path string) (int64, error) {
	pathC := C.CString(path)
	defer freeCString(pathC)
	return takeResult(cleanser_process_file(C.int64_t(handle), pathC))
}

func wrapProcessText(handle int64, text string) (int64, error) {
	textC := C.CString(text)
	defer freeCString(textC)
	return takeResult(cleanser_process_text(C.int64_t(handle), textC))
}

func wrapCount(handle int64) int64 {
	return int64(cleanser_count(C.int64_t(handle)))
}

func wrapSave(handle int64, path string) error {
	pathC := C.CString(path)
	defer freeCString(pathC)
	errC := cleanser_save(C.int64_t(handle), pathC)
	if errC == nil {
		return nil
	}
	defer freeCString(errC)
	return errors.New(C.GoString(errC))
}

func wrapFree(handle int64) bool {
	return bool(cleanser_free(C.int64_t(handle)))
}

func main() {}
