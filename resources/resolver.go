package resources

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru"
)

const KEYWORD_CACHE_SZ = 64

type ListSource uint8

// Where a keyword list was resolved from.
const (
	SOURCE_EMBEDDED ListSource = iota
	SOURCE_LOCAL
	SOURCE_REMOTE
)

func (s ListSource) String() string {
	switch s {
	case SOURCE_EMBEDDED:
		return "embedded"
	case SOURCE_LOCAL:
		return "local"
	case SOURCE_REMOTE:
		return "remote"
	default:
		return fmt.Sprintf("ListSource(%d)", uint8(s))
	}
}

// WriteCounter counts the number of bytes written to it, and every 10 seconds,
// it logs the number of bytes written so far.
type WriteCounter struct {
	Total    uint64
	Last     time.Time
	Reported bool
	Path     string
	Size     uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last).Seconds() > 10 {
		wc.Reported = true
		wc.Last = time.Now()
		slog.Info("downloading keyword list",
			"path", wc.Path,
			"completed", humanize.Bytes(wc.Total),
			"size", humanize.Bytes(wc.Size))
	}
	return n, nil
}

// KeywordList is a resolved list of disallowed keywords.
type KeywordList struct {
	Id       string
	Source   ListSource
	Keywords []string
	Size     uint64
}

var listCache, _ = lru.NewARC(KEYWORD_CACHE_SZ)

// ClearCache drops every cached keyword list.
func ClearCache() {
	listCache.Purge()
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	return true
}

// ParseKeywords
// Splits a keyword list into its keywords: one per line, trimmed, skipping
// blank lines and lines starting with `#`.
func ParseKeywords(data []byte) []string {
	keywords := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		keyword := strings.TrimSpace(scanner.Text())
		if keyword == "" || strings.HasPrefix(keyword, "#") {
			continue
		}
		keywords = append(keywords, keyword)
	}
	return keywords
}

// Fetch
// Given a keyword list id, determines if the list is embedded, remote, or
// local, and returns a ReadCloser over its raw contents.
func Fetch(id string, auth string) (io.ReadCloser, ListSource, error) {
	if _, err := EmbeddedListExists(id); err == nil {
		data, readErr := GetEmbeddedList(id)
		if readErr != nil {
			return nil, SOURCE_EMBEDDED, readErr
		}
		return io.NopCloser(bytes.NewReader(data)), SOURCE_EMBEDDED, nil
	}
	if isValidUrl(id) {
		body, err := FetchHTTP(id, auth)
		return body, SOURCE_REMOTE, err
	}
	handle, err := os.Open(id)
	if err != nil {
		return nil, SOURCE_LOCAL, fmt.Errorf("error opening %s: %w", id, err)
	}
	return handle, SOURCE_LOCAL, nil
}

// Size
// Given a keyword list id, determine the size of the list in bytes.
func Size(id string, auth string) (uint, error) {
	if _, err := EmbeddedListExists(id); err == nil {
		data, readErr := GetEmbeddedList(id)
		return uint(len(data)), readErr
	}
	if isValidUrl(id) {
		return SizeHTTP(id, auth)
	}
	stat, err := os.Stat(id)
	if err != nil {
		return 0, err
	}
	return uint(stat.Size()), nil
}

// ResolveKeywords
// Resolves a keyword list id to its keywords, from embedded, local
// filesystem, or remote. Resolved lists are cached by id.
func ResolveKeywords(id string, auth string) (*KeywordList, error) {
	if id == "" {
		return nil, errors.New("empty keyword list id")
	}
	if cached, ok := listCache.Get(id); ok {
		return cached.(*KeywordList).clone(), nil
	}

	var list *KeywordList
	var err error
	if _, embedErr := EmbeddedListExists(id); embedErr == nil {
		list, err = resolveEmbedded(id)
	} else if isValidUrl(id) {
		list, err = resolveRemote(id, auth)
	} else {
		list, err = resolveLocal(id)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved keyword list",
		"id", id,
		"source", list.Source.String(),
		"keywords", len(list.Keywords),
		"size", humanize.Bytes(list.Size))
	listCache.Add(id, list)
	return list.clone(), nil
}

// ResolveKeywordLists
// Resolves every id in order and merges their keywords, keeping the first
// occurrence of each.
func ResolveKeywordLists(ids []string, auth string) ([]string, error) {
	merged := make([]string, 0)
	seen := make(map[string]struct{})
	for _, id := range ids {
		list, err := ResolveKeywords(id, auth)
		if err != nil {
			return nil, err
		}
		for _, keyword := range list.Keywords {
			if _, dup := seen[keyword]; dup {
				continue
			}
			seen[keyword] = struct{}{}
			merged = append(merged, keyword)
		}
	}
	return merged, nil
}

func (kl *KeywordList) clone() *KeywordList {
	cloned := *kl
	cloned.Keywords = append([]string(nil), kl.Keywords...)
	return &cloned
}

func resolveEmbedded(id string) (*KeywordList, error) {
	data, err := GetEmbeddedList(id)
	if err != nil {
		return nil, fmt.Errorf("cannot read embedded list `%s`: %w", id, err)
	}
	return &KeywordList{
		Id:       id,
		Source:   SOURCE_EMBEDDED,
		Keywords: ParseKeywords(data),
		Size:     uint64(len(data)),
	}, nil
}

func resolveLocal(id string) (*KeywordList, error) {
	file, err := os.Open(id)
	if err != nil {
		return nil, fmt.Errorf("cannot open keyword list `%s`: %w", id, err)
	}
	defer file.Close()
	contents, release, mmapErr := mapFile(file)
	if mmapErr != nil {
		return nil, fmt.Errorf("error trying to mmap file: %w", mmapErr)
	}
	// ParseKeywords copies out of the mapping, so it is safe to release.
	keywords := ParseKeywords(contents)
	size := uint64(len(contents))
	if unmapErr := release(); unmapErr != nil {
		return nil, fmt.Errorf("error unmapping `%s`: %w", id, unmapErr)
	}
	return &KeywordList{
		Id:       id,
		Source:   SOURCE_LOCAL,
		Keywords: keywords,
		Size:     size,
	}, nil
}

func resolveRemote(id string, auth string) (*KeywordList, error) {
	body, err := FetchHTTP(id, auth)
	if err != nil {
		return nil, fmt.Errorf("cannot retrieve `%s`: %w", id, err)
	}
	defer body.Close()
	// The size is only used for progress reporting.
	size, _ := SizeHTTP(id, auth)
	counter := &WriteCounter{
		Last: time.Now(),
		Path: id,
		Size: uint64(size),
	}
	data, readErr := io.ReadAll(io.TeeReader(body, counter))
	if readErr != nil {
		return nil, fmt.Errorf("error downloading `%s`: %w", id, readErr)
	}
	return &KeywordList{
		Id:       id,
		Source:   SOURCE_REMOTE,
		Keywords: ParseKeywords(data),
		Size:     uint64(len(data)),
	}, nil
}

// listFileName derives the file name a downloaded list is stored under.
func listFileName(id string) string {
	var base string
	if isValidUrl(id) {
		u, _ := url.Parse(id)
		base = path.Base(u.Path)
	} else {
		base = filepath.Base(id)
	}
	if base == "" || base == "." || base == "/" {
		base = "keywords"
	}
	if filepath.Ext(base) == "" {
		base += ".txt"
	}
	return base
}

// DownloadKeywords
// Resolves a keyword list id and stores its raw contents in dir, returning
// the path written. A file already present with the right size is kept.
func DownloadKeywords(id string, dir string, auth string) (string, error) {
	if id == "" {
		return "", errors.New("empty keyword list id")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create `%s`: %w", dir, err)
	}
	targetPath := filepath.Join(dir, listFileName(id))
	slog.Info("resolving keyword list", "id", id, "target", targetPath)

	rsrcSize, sizeErr := Size(id, auth)
	if sizeErr != nil {
		return "", fmt.Errorf("cannot retrieve `%s`: %w", id, sizeErr)
	}
	if targetStat, statErr := os.Stat(targetPath); statErr == nil &&
		uint(targetStat.Size()) == rsrcSize {
		slog.Info("skipping keyword list, already exists "+
			"and of the correct size", "id", id, "target", targetPath)
		return targetPath, nil
	}

	rsrcReader, _, fetchErr := Fetch(id, auth)
	if fetchErr != nil {
		return "", fmt.Errorf("cannot retrieve `%s`: %w", id, fetchErr)
	}
	defer rsrcReader.Close()
	rsrcFile, openErr := os.OpenFile(targetPath,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if openErr != nil {
		return "", fmt.Errorf("error opening '%s' for write: %w",
			targetPath, openErr)
	}
	counter := &WriteCounter{
		Last: time.Now(),
		Path: id,
		Size: uint64(rsrcSize),
	}
	bytesDownloaded, ioErr := io.Copy(rsrcFile,
		io.TeeReader(rsrcReader, counter))
	closeErr := rsrcFile.Close()
	if ioErr != nil {
		return "", fmt.Errorf("error downloading '%s': %w", id, ioErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("error closing '%s': %w", targetPath, closeErr)
	}
	slog.Info("downloaded keyword list",
		"id", id,
		"target", targetPath,
		"size", humanize.Bytes(uint64(bytesDownloaded)))
	return targetPath, nil
}
