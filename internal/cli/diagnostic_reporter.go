package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/decoratable/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	out     io.Writer
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to out
func NewDiagnosticReporter(out io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{out: out, verbose: verbose}
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	warn := color.New(color.FgYellow, color.Bold)
	warn.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError reports err, listing every error when several were collected
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var multiple *errors.MultipleErrors
	if stderrors.As(err, &multiple) && multiple.Count() > 1 {
		fmt.Fprintf(r.out, "%d problems found\n\n", multiple.Count())
		for i, item := range multiple.Errors {
			fmt.Fprintf(r.out, "[%d/%d] ", i+1, multiple.Count())
			r.reportOne(item)
		}
		return
	}

	r.reportOne(err)
}

func (r *DiagnosticReporter) reportOne(err error) {
	var structured errors.DecoratableError
	if !stderrors.As(err, &structured) {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
		return
	}

	r.printErrorHeader(structured.ErrorCode())

	loc := structured.Location()
	message := err.Error()
	if loc.File != "" {
		message = strings.TrimPrefix(message, loc.String()+": ")
		fmt.Fprintf(r.out, "Location: %s\n", loc.String())
	}
	fmt.Fprintf(r.out, "Message: %s\n\n", message)

	if context := structured.Context(); len(context) > 0 {
		r.printContext(context)
	}
	if suggestions := structured.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}
	if r.verbose {
		r.printErrorChain(structured.Unwrap())
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	title := code.String()
	bold := color.New(color.FgRed, color.Bold)
	bold.Fprintf(r.out, "%s\n", title)
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("-", len(title)))
}

// printContext prints context information in a readable, stable order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.out, "\n")
}

// printErrorChain prints the causes below a structured error
func (r *DiagnosticReporter) printErrorChain(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(r.out, "Error Chain:\n")
	for level := 1; err != nil; level++ {
		fmt.Fprintf(r.out, "   %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
	}
	fmt.Fprintf(r.out, "\n")
}

// ReportSuccess reports a successful run with summary information
func (r *DiagnosticReporter) ReportSuccess(out io.Writer, summary GenerationSummary) {
	fmt.Fprintf(out, "\nProcessed %d package(s) and %d Swift file(s)\n", summary.PackagesProcessed, summary.SwiftFilesScanned)
	fmt.Fprintf(out, "Found %d annotated declaration(s), generated %d decorator(s)\n", summary.ContractsFound, summary.DecoratorsEmitted)

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(out, "  - %s\n", file)
		}
	}
	if len(summary.RemovedFiles) > 0 {
		fmt.Fprintf(out, "\nRemoved files:\n")
		for _, file := range summary.RemovedFiles {
			fmt.Fprintf(out, "  - %s\n", file)
		}
	}
}
