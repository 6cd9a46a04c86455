package resources

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed data/keywords/*.txt
var f embed.FS

const embeddedDir = "data/keywords"

// GetEmbeddedList
// Returns the raw bytes of the keyword list embedded under the given name,
// e.g. `spam` for `data/keywords/spam.txt`.
func GetEmbeddedList(name string) ([]byte, error) {
	return f.ReadFile(path.Join(embeddedDir, name+".txt"))
}

// EmbeddedListExists
// Returns true if a keyword list of that name is embedded in the binary,
// otherwise false and an error.
func EmbeddedListExists(name string) (bool, error) {
	if strings.ContainsAny(name, "/\\") {
		return false, fmt.Errorf("'%s' is not an embedded list name", name)
	}
	if _, err := fs.Stat(f, path.Join(embeddedDir, name+".txt")); err != nil {
		return false, err
	}
	return true, nil
}

// EmbeddedLists returns the names of every embedded keyword list, sorted.
func EmbeddedLists() []string {
	entries, _ := f.ReadDir(embeddedDir)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}

// FetchHTTP
// Fetch a resource from a remote HTTP server with bearer token auth.
func FetchHTTP(uri string, auth string) (io.ReadCloser, error) {
	req, reqErr := http.NewRequest("GET", uri, nil)
	if reqErr != nil {
		return nil, reqErr
	}
	if auth != "" {
		req.Header.Add("Authorization", "Bearer "+auth)
	}
	resp, remoteErr := http.DefaultClient.Do(req)
	if remoteErr != nil {
		return nil, remoteErr
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New(fmt.Sprintf("HTTP status code %d",
			resp.StatusCode))
	}
	return resp.Body, nil
}

// SizeHTTP
// Get the size of a resource from a remote HTTP server with bearer token auth.
func SizeHTTP(uri string, auth string) (uint, error) {
	req, reqErr := http.NewRequest("HEAD", uri, nil)
	if reqErr != nil {
		return 0, reqErr
	}
	if auth != "" {
		req.Header.Add("Authorization", "Bearer "+auth)
	}
	resp, remoteErr := http.DefaultClient.Do(req)
	if remoteErr != nil {
		return 0, remoteErr
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, errors.New(fmt.Sprintf("HTTP status code %d",
			resp.StatusCode))
	}
	size, _ := strconv.Atoi(resp.Header.Get("Content-Length"))
	return uint(size), nil
}
