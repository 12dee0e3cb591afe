package utils

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, entry fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, entry fs.DirEntry) bool

// WalkOptions configures file walking behavior
type WalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	Recursive       bool
	SkipErrors      bool
}

// GoSourceFilter matches Go files that belong to a build, excluding tests
func GoSourceFilter() FileFilter {
	return func(path string, entry fs.DirEntry) bool {
		name := entry.Name()
		return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
	}
}

// SwiftSourceFilter matches Swift files, excluding files previously written
// with the given output suffix
func SwiftSourceFilter(outputSuffix string) FileFilter {
	return func(path string, entry fs.DirEntry) bool {
		name := entry.Name()
		if !strings.HasSuffix(name, ".swift") {
			return false
		}
		return outputSuffix == "" || !strings.HasSuffix(name, outputSuffix+".swift")
	}
}

// NamedFileFilter matches files with exactly the given name
func NamedFileFilter(name string) FileFilter {
	return func(path string, entry fs.DirEntry) bool {
		return entry.Name() == name
	}
}

// SuffixFileFilter matches files whose name ends with suffix
func SuffixFileFilter(suffix string) FileFilter {
	return func(path string, entry fs.DirEntry) bool {
		return strings.HasSuffix(entry.Name(), suffix)
	}
}

// DefaultDirectoryFilter skips directories that never hold sources of the
// current project: vendored code, tool caches and hidden directories
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"Pods":         true,
		"Carthage":     true,
		"DerivedData":  true,
	}

	return func(path string, entry fs.DirEntry) bool {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return false
		}
		return !skipDirs[name]
	}
}

// WalkFiles returns the files under root accepted by the options, in lexical order.
// The root itself is never rejected by the directory filter.
func WalkFiles(root string, options WalkOptions) ([]string, error) {
	var matched []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if !options.Recursive {
				return filepath.SkipDir
			}
			if options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matched = append(matched, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matched, nil
}

// DirectoriesWithFiles returns the sorted, de-duplicated directories that
// hold at least one file accepted by the options
func DirectoriesWithFiles(roots []string, options WalkOptions) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	for _, root := range roots {
		files, err := WalkFiles(root, options)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			dir := filepath.Dir(file)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}
