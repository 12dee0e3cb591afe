package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/utils"
)

// ScanResult lists the inputs found by a scan
type ScanResult struct {
	GoPackages []string // absolute package directories
	SwiftFiles []string // absolute Swift source paths
}

// IsEmpty reports whether the scan found nothing to process
func (r *ScanResult) IsEmpty() bool {
	return len(r.GoPackages) == 0 && len(r.SwiftFiles) == 0
}

// DirectoryScanner resolves Go-style patterns into package directories and
// Swift source files
type DirectoryScanner struct {
	dirFilter utils.DirectoryFilter
	logger    zerolog.Logger
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner(logger zerolog.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		dirFilter: utils.DefaultDirectoryFilter(),
		logger:    logger,
	}
}

// pattern is a parsed command line pattern
type pattern struct {
	root      string
	recursive bool
}

// parsePattern handles "dir", "dir/..." and "./..."
func parsePattern(raw string) (pattern, error) {
	p := pattern{root: raw}
	if raw == "..." || strings.HasSuffix(raw, "/...") {
		p.recursive = true
		p.root = strings.TrimSuffix(strings.TrimSuffix(raw, "..."), "/")
		if p.root == "" {
			p.root = "."
		}
	}

	root, err := filepath.Abs(p.root)
	if err != nil {
		return pattern{}, errors.WrapWithOperation("resolve", "path "+p.root, err)
	}
	p.root = root
	return p, nil
}

// Scan walks every pattern. A pattern naming a file contributes that file
// (Swift) or its directory (Go).
func (s *DirectoryScanner) Scan(patterns []string, config Config) (*ScanResult, error) {
	goDirs := make(map[string]bool)
	swiftFiles := make(map[string]bool)

	for _, raw := range patterns {
		p, err := parsePattern(raw)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(p.root)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", p.root, err)
		}

		if !info.IsDir() {
			switch filepath.Ext(p.root) {
			case ".go":
				if config.ScansGo() {
					goDirs[filepath.Dir(p.root)] = true
				}
			case ".swift":
				if config.ScansSwift() {
					swiftFiles[p.root] = true
				}
			default:
				return nil, errors.Newf(errors.FileSystemErrorCode, "%s is neither a directory nor a Go or Swift file", raw)
			}
			continue
		}

		options := utils.WalkOptions{
			DirectoryFilter: s.dirFilter,
			Recursive:       p.recursive,
			SkipErrors:      true,
		}

		if config.ScansGo() {
			options.FileFilter = utils.GoSourceFilter()
			dirs, err := utils.DirectoriesWithFiles([]string{p.root}, options)
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", p.root, err)
			}
			for _, dir := range dirs {
				goDirs[dir] = true
			}
		}

		if config.ScansSwift() {
			options.FileFilter = utils.SwiftSourceFilter(config.SwiftSuffix)
			files, err := utils.WalkFiles(p.root, options)
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", p.root, err)
			}
			for _, file := range files {
				swiftFiles[file] = true
			}
		}

		s.logger.Debug().
			Str("pattern", raw).
			Str("root", p.root).
			Bool("recursive", p.recursive).
			Msg("scanned pattern")
	}

	return &ScanResult{
		GoPackages: sortedKeys(goDirs),
		SwiftFiles: sortedKeys(swiftFiles),
	}, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
