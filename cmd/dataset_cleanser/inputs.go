package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/yargevad/filepathx"
)

// PathInfo describes one text source, local or in S3.
type PathInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	Remote  bool
}

// GlobTexts
// Given a directory path, recursively finds all `.txt` files, returning a
// slice of PathInfo.
func GlobTexts(dirPath string) (pathInfos []PathInfo, err error) {
	textPaths, err := filepathx.Glob(dirPath + "/**/*.txt")
	if err != nil {
		return nil, err
	}
	numMatches := len(textPaths)
	if numMatches == 0 {
		return nil, errors.New(fmt.Sprintf(
			"%s does not contain any .txt files", dirPath))
	}
	pathInfos = make([]PathInfo, 0, numMatches)
	for _, currPath := range textPaths {
		stat, statErr := os.Stat(currPath)
		if statErr != nil {
			return nil, statErr
		}
		if stat.IsDir() {
			continue
		}
		pathInfos = append(pathInfos, PathInfo{
			Path:    currPath,
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
		})
	}
	return pathInfos, nil
}

func SortPathInfoBySize(pathInfos []PathInfo, ascending bool) {
	if ascending {
		sort.SliceStable(pathInfos, func(i, j int) bool {
			return pathInfos[i].Size < pathInfos[j].Size
		})
	} else {
		sort.SliceStable(pathInfos, func(i, j int) bool {
			return pathInfos[i].Size > pathInfos[j].Size
		})
	}
}

func SortPathInfoByPath(pathInfos []PathInfo, ascending bool) {
	if ascending {
		sort.SliceStable(pathInfos, func(i, j int) bool {
			return pathInfos[i].Path < pathInfos[j].Path
		})
	} else {
		sort.SliceStable(pathInfos, func(i, j int) bool {
			return pathInfos[i].Path > pathInfos[j].Path
		})
	}
}

func ShufflePathInfos(pathInfos []PathInfo) {
	rand.Shuffle(len(pathInfos), func(i, j int) {
		pathInfos[i], pathInfos[j] = pathInfos[j], pathInfos[i]
	})
}

// ReorderPathInfos
// Reorders pathInfos in place by the given sort order. An empty spec or
// `none` keeps discovery order.
func ReorderPathInfos(pathInfos []PathInfo, spec string) error {
	switch spec {
	case "", "none":
	case "size_ascending":
		SortPathInfoBySize(pathInfos, true)
	case "size_descending":
		SortPathInfoBySize(pathInfos, false)
	case "path_ascending":
		SortPathInfoByPath(pathInfos, true)
	case "path_descending":
		SortPathInfoByPath(pathInfos, false)
	case "random":
		ShufflePathInfos(pathInfos)
	default:
		return errors.New(fmt.Sprintf("invalid sort spec: %s", spec))
	}
	return nil
}

// ExpandInputs
// Turns command line inputs into the ordered list of sources to cleanse.
// Files are taken as given; directories and S3 prefixes are expanded to
// the `.txt` files under them and reordered per spec. Inputs keep their
// relative command line order.
func ExpandInputs(inputs []string, spec string,
	s3Client func() (S3Client, error)) ([]PathInfo, error) {
	expanded := make([]PathInfo, 0, len(inputs))
	var svc S3Client
	for _, input := range inputs {
		if isS3URI(input) {
			if svc == nil {
				client, err := s3Client()
				if err != nil {
					return nil, err
				}
				svc = client
			}
			bucket, prefix, err := parseS3URI(input)
			if err != nil {
				return nil, err
			}
			objects, err := listS3Texts(svc, bucket, prefix)
			if err != nil {
				return nil, err
			}
			if err := ReorderPathInfos(objects, spec); err != nil {
				return nil, err
			}
			expanded = append(expanded, objects...)
			continue
		}
		stat, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !stat.IsDir() {
			expanded = append(expanded, PathInfo{
				Path:    input,
				Size:    stat.Size(),
				ModTime: stat.ModTime(),
			})
			continue
		}
		matches, err := GlobTexts(input)
		if err != nil {
			return nil, err
		}
		if err := ReorderPathInfos(matches, spec); err != nil {
			return nil, err
		}
		expanded = append(expanded, matches...)
	}
	return expanded, nil
}
