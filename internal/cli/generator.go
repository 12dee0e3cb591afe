package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/generator"
	"github.com/toyz/decoratable/internal/models"
	"github.com/toyz/decoratable/internal/parser"
	"github.com/toyz/decoratable/internal/swift"
	"github.com/toyz/decoratable/internal/templates"
	"github.com/toyz/decoratable/internal/utils"
)

// generatedMarker identifies files this tool may overwrite or remove
var generatedMarker = []byte("// Code generated by decoratable. DO NOT EDIT.")

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	SwiftFilesScanned int
	ContractsFound    int
	DecoratorsEmitted int
	GeneratedFiles    []string
	RemovedFiles      []string
	FailedUnits       int
	Duration          time.Duration
}

// Generator coordinates the CLI generation process
type Generator struct {
	config      Config
	scanner     *DirectoryScanner
	modules     *ModuleResolver
	goGen       *generator.Generator
	swiftGen    *generator.Generator
	loaders     *xsync.Map[string, *parser.PackageLoader]
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
	logger      zerolog.Logger
	summary     GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem, logger zerolog.Logger) *Generator {
	return &Generator{
		config:      config,
		scanner:     NewDirectoryScanner(logger),
		modules:     NewModuleResolver(config.Module),
		goGen:       generator.NewGenerator(templates.NewGoEmitter(config.Header), generator.WithLogger(logger)),
		swiftGen:    generator.NewGenerator(templates.NewSwiftEmitter(config.Header), generator.WithLogger(logger)),
		loaders:     xsync.NewMap[string, *parser.PackageLoader](),
		diagnostics: diagnostics,
		reporter:    NewDiagnosticReporter(diagnostics.ErrorOutput(), config.Verbose),
		logger:      logger,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Reporter returns the reporter used for failures
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// unitResult is the outcome of expanding one package or Swift file
type unitResult struct {
	key       string
	file      *models.GeneratedFile
	output    string // output path, also set when nothing was generated
	contracts int
	err       error
}

// Run scans patterns, expands every unit concurrently and writes the results
// in sorted order. Failed units are reported together; the outputs of the
// units that succeeded are still written.
func (g *Generator) Run(ctx context.Context, patterns []string) error {
	start := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Header("Generating decorators")
	g.diagnostics.Verbose("Patterns: %v", patterns)

	scan, err := g.scanner.Scan(patterns, g.config)
	if err != nil {
		return err
	}
	if scan.IsEmpty() {
		return errors.New(errors.FileSystemErrorCode, "no Go packages or Swift files found for the given patterns").
			WithContext("patterns", patterns).
			WithContext("dialect", g.config.Dialect).
			WithSuggestions(
				"Check that the patterns point at directories with sources",
				"Use the './...' pattern to scan subdirectories",
			)
	}

	g.summary.PackagesProcessed = len(scan.GoPackages)
	g.summary.SwiftFilesScanned = len(scan.SwiftFiles)

	g.diagnostics.PhaseHeader("Expanding")
	results, err := g.expandAll(ctx, scan)
	if err != nil {
		return err
	}

	var failures *errors.MultipleErrors
	for _, result := range results {
		g.summary.ContractsFound += result.contracts
		switch {
		case result.err != nil:
			g.summary.FailedUnits++
			errors.Collect(&failures, result.err)
		case result.file != nil:
			g.summary.DecoratorsEmitted += len(result.file.Declarations)
			g.diagnostics.PhaseItem(fmt.Sprintf("%s: %d decorator(s)", g.relative(result.key), len(result.file.Declarations)))
		}
	}

	g.diagnostics.PhaseHeader("Writing")
	for _, result := range results {
		if result.err != nil {
			continue
		}
		if result.file != nil {
			if err := g.emit(result.file); err != nil {
				errors.Collect(&failures, err)
			}
			continue
		}
		if err := g.removeStale(result.output); err != nil {
			errors.Collect(&failures, err)
		}
	}

	g.summary.Duration = time.Since(start)
	return failures.ErrOrNil()
}

// expandAll runs one expansion per unit, bounded by the configured jobs.
// Results are keyed by unit and returned in key order.
func (g *Generator) expandAll(ctx context.Context, scan *ScanResult) ([]unitResult, error) {
	collected := xsync.NewMap[string, unitResult]()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.config.Jobs)

	for _, dir := range scan.GoPackages {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			collected.Store(dir, g.expandGoPackage(dir))
			return nil
		})
	}
	for _, path := range scan.SwiftFiles {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			collected.Store(path, g.expandSwiftFile(path))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]unitResult, 0, collected.Size())
	collected.Range(func(_ string, result unitResult) bool {
		results = append(results, result)
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].key < results[j].key
	})
	return results, nil
}

func (g *Generator) expandGoPackage(dir string) unitResult {
	result := unitResult{key: dir, output: filepath.Join(dir, g.config.Output)}

	importPath, err := g.modules.ImportPath(dir)
	if err != nil {
		g.logger.Warn().Err(err).Str("dir", dir).Msg("package is outside a module, embedded interfaces from other packages cannot be resolved")
	}

	opts := []parser.Option{parser.WithLogger(g.logger)}
	if loader := g.loaderFor(dir); loader != nil {
		opts = append(opts, parser.WithResolver(loader))
	}

	pkg, err := parser.NewParser(opts...).ParseDirectory(dir, importPath)
	if err != nil {
		result.err = err
		return result
	}
	result.contracts = len(pkg.Contracts)
	if len(pkg.Contracts) == 0 {
		return result
	}

	result.file, result.err = g.goGen.GenerateFile(pkg.Unit(g.config.Output))
	return result
}

func (g *Generator) expandSwiftFile(path string) unitResult {
	result := unitResult{key: path, output: templates.SwiftOutputPath(path, g.config.SwiftSuffix)}

	src, err := os.ReadFile(path)
	if err != nil {
		result.err = errors.WrapFileSystemError("read", path, err)
		return result
	}

	file, err := swift.NewParser(swift.WithLogger(g.logger)).ParseFile(path, src)
	if err != nil {
		result.err = err
		return result
	}
	result.contracts = len(file.Contracts)
	if len(file.Contracts) == 0 {
		return result
	}

	result.file, result.err = g.swiftGen.GenerateFile(file.Unit(result.output))
	return result
}

// loaderFor returns the package loader shared by every package of the
// module owning dir
func (g *Generator) loaderFor(dir string) *parser.PackageLoader {
	module, err := g.modules.Module(dir)
	if err != nil {
		return nil
	}
	loader, _ := g.loaders.LoadOrCompute(module.Dir, func() (*parser.PackageLoader, bool) {
		return parser.NewPackageLoader(module.Dir, g.logger), false
	})
	return loader
}

// emit writes a generated file, or prints it in dry run mode
func (g *Generator) emit(file *models.GeneratedFile) error {
	if g.config.DryRun {
		out := g.diagnostics.Output()
		fmt.Fprintf(out, "// ---- %s ----\n%s", g.relative(file.Path), file.Content)
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.Path)
		return nil
	}

	if existing, err := os.ReadFile(file.Path); err == nil {
		if bytes.Equal(existing, []byte(file.Content)) {
			g.diagnostics.Verbose("%s is up to date", g.relative(file.Path))
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.Path)
			return nil
		}
		if g.config.Header && len(existing) > 0 && !bytes.Contains(existing, generatedMarker) {
			return errors.Newf(errors.FileSystemErrorCode, "refusing to overwrite %s: it was not generated by decoratable", file.Path).
				WithContext("path", file.Path).
				WithSuggestions("Rename the file, or choose another output name with --output")
		}
	}

	if err := os.WriteFile(file.Path, []byte(file.Content), 0644); err != nil {
		return errors.WrapFileSystemError("write", file.Path, err)
	}

	g.diagnostics.PhaseWrite(fmt.Sprintf("Writing %s", g.relative(file.Path)))
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.Path)
	return nil
}

// removeStale deletes a previously generated file whose contracts are gone
func (g *Generator) removeStale(path string) error {
	existing, err := os.ReadFile(path)
	if err != nil || !bytes.Contains(existing, generatedMarker) {
		return nil
	}

	if g.config.DryRun {
		g.diagnostics.Info("would remove %s", g.relative(path))
		return nil
	}
	if err := os.Remove(path); err != nil {
		return errors.WrapFileSystemError("remove", path, err)
	}

	g.diagnostics.PhaseItem(fmt.Sprintf("Removed stale %s", g.relative(path)))
	g.summary.RemovedFiles = append(g.summary.RemovedFiles, path)
	return nil
}

// relative shortens path for display when it is below the working directory
func (g *Generator) relative(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
