package cli

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/utils"
)

// Cleaner removes generated files
type Cleaner struct {
	config    Config
	dirFilter utils.DirectoryFilter
	logger    zerolog.Logger
}

// NewCleaner creates a new cleaner
func NewCleaner(config Config, logger zerolog.Logger) *Cleaner {
	return &Cleaner{
		config:    config,
		dirFilter: utils.DefaultDirectoryFilter(),
		logger:    logger,
	}
}

// CleanGeneratedFiles removes the Go and Swift outputs below the patterns and
// returns the removed paths. Files of the same name that were not written by
// this tool are left alone.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	var filters []utils.FileFilter
	if c.config.ScansGo() {
		filters = append(filters, utils.NamedFileFilter(c.config.Output))
	}
	if c.config.ScansSwift() {
		filters = append(filters, utils.SuffixFileFilter(c.config.SwiftSuffix+".swift"))
	}

	var removed []string
	for _, raw := range patterns {
		p, err := parsePattern(raw)
		if err != nil {
			return removed, err
		}

		info, err := os.Stat(p.root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, errors.WrapFileSystemError("stat", p.root, err)
		}
		if !info.IsDir() {
			p.root = filepath.Dir(p.root)
		}

		files, err := utils.WalkFiles(p.root, utils.WalkOptions{
			FileFilter:      anyFilter(filters),
			DirectoryFilter: c.dirFilter,
			Recursive:       p.recursive,
			SkipErrors:      true,
		})
		if err != nil {
			return removed, errors.WrapFileSystemError("scan", p.root, err)
		}

		for _, file := range files {
			ok, err := c.removeGenerated(file)
			if err != nil {
				return removed, err
			}
			if ok {
				removed = append(removed, file)
			}
		}
	}

	return removed, nil
}

func (c *Cleaner) removeGenerated(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.WrapFileSystemError("read", path, err)
	}
	if !bytes.Contains(content, generatedMarker) {
		c.logger.Debug().Str("file", path).Msg("skipping file without the generated header")
		return false, nil
	}

	if c.config.DryRun {
		return true, nil
	}
	if err := os.Remove(path); err != nil {
		return false, errors.WrapFileSystemError("remove", path, err)
	}

	c.logger.Debug().Str("file", path).Msg("removed generated file")
	return true, nil
}

func anyFilter(filters []utils.FileFilter) utils.FileFilter {
	return func(path string, entry os.DirEntry) bool {
		for _, filter := range filters {
			if filter(path, entry) {
				return true
			}
		}
		return false
	}
}
