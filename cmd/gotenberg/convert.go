package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	gotenberg "github.com/alnah/go-gotenberg"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrUnsupportedInput   = errors.New("unsupported input type")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// markdownTemplate wraps standalone markdown files for the Chromium engine.
const markdownTemplate = `<!doctype html>
<html>
  <head><meta charset="utf-8"></head>
  <body>{{ toHTML "index.md" }}</body>
</html>
`

// inputKind classifies an input argument.
type inputKind int

const (
	kindURL inputKind = iota
	kindHTML
	kindMarkdown
	kindOffice
)

// officeExtensions are the LibreOffice-convertible formats the CLI accepts.
var officeExtensions = map[string]bool{
	".doc": true, ".docx": true, ".odt": true, ".rtf": true, ".txt": true,
	".xls": true, ".xlsx": true, ".ods": true, ".csv": true,
	".ppt": true, ".pptx": true, ".odp": true,
}

// detectKind classifies input by URL scheme or file extension.
func detectKind(input string) (inputKind, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return kindURL, nil
	}
	switch ext := strings.ToLower(filepath.Ext(input)); {
	case ext == ".html" || ext == ".htm":
		return kindHTML, nil
	case ext == ".md" || ext == ".markdown":
		return kindMarkdown, nil
	case officeExtensions[ext]:
		return kindOffice, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedInput, input)
	}
}

// job is one input scheduled for conversion.
type job struct {
	Input  string
	Output string
}

// result holds the outcome of a single conversion.
type result struct {
	Input    string
	Output   string
	Err      error
	Duration time.Duration
}

// validateWorkers rejects negative worker counts early.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, n)
	}
	return nil
}

// resolveWorkers determines the parallelism. Priority: explicit value,
// then half of GOMAXPROCS (adjusted by automaxprocs in containers),
// bounded to [1, 8].
func resolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// outputPath derives the output file for input: the basename (or a
// flattened URL) gets the output extension, placed in outDir when set.
func outputPath(input, outDir, ext string) string {
	base := filepath.Base(input)
	if u := strings.TrimPrefix(strings.TrimPrefix(input, "https://"), "http://"); u != input {
		base = strings.ReplaceAll(strings.Trim(u, "/"), "/", "_")
		if base == "" {
			base = "output"
		}
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	name := base + ext
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return name
}

// buildWebOptions maps flags and config to the library's option model.
func buildWebOptions(f *cliFlags, cfg *Config) (gotenberg.WebOptions, error) {
	opts := gotenberg.WebOptions{TraceID: f.trace}
	if cfg.PaperSize != "" {
		format, err := gotenberg.ParsePaperFormat(cfg.PaperSize)
		if err != nil {
			return opts, err
		}
		opts.SetPaperFormat(format)
	}
	if cfg.Landscape {
		opts.Landscape = gotenberg.Bool(true)
	}
	if f.pageRanges != "" {
		ranges, err := gotenberg.ParsePageRange(f.pageRanges)
		if err != nil {
			return opts, err
		}
		opts.NativePageRanges = ranges
	}
	if f.pdfa != "" {
		opts.PDFA = gotenberg.PDFFormat(f.pdfa)
	}
	if f.pdfua {
		opts.PDFUA = gotenberg.Bool(true)
	}
	return opts, opts.Validate()
}

// buildScreenshotOptions maps flags to the screenshot option model.
func buildScreenshotOptions(f *cliFlags) (gotenberg.ScreenshotOptions, error) {
	opts := gotenberg.ScreenshotOptions{TraceID: f.trace}
	if f.format != "" {
		opts.Format = gotenberg.ImageFormat(f.format)
	}
	return opts, opts.Validate()
}

// buildDocumentOptions maps flags and config to the LibreOffice option model.
func buildDocumentOptions(f *cliFlags, cfg *Config) (gotenberg.DocumentOptions, error) {
	opts := gotenberg.DocumentOptions{TraceID: f.trace}
	if cfg.Landscape {
		opts.Landscape = gotenberg.Bool(true)
	}
	if f.pageRanges != "" {
		ranges, err := gotenberg.ParsePageRange(f.pageRanges)
		if err != nil {
			return opts, err
		}
		opts.NativePageRanges = ranges
	}
	if f.pdfa != "" {
		opts.PDFA = gotenberg.PDFFormat(f.pdfa)
	}
	if f.pdfua {
		opts.PDFUA = gotenberg.Bool(true)
	}
	return opts, opts.Validate()
}

// screenshotExt maps the format flag to a file extension.
func screenshotExt(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "webp":
		return ".webp"
	default:
		return ".png"
	}
}

// convertOne performs a single conversion end to end.
func convertOne(ctx context.Context, client *gotenberg.Client, f *cliFlags, cfg *Config, j job) error {
	kind, err := detectKind(j.Input)
	if err != nil {
		return err
	}

	var payload []byte
	switch {
	case f.screenshot:
		opts, err := buildScreenshotOptions(f)
		if err != nil {
			return err
		}
		switch kind {
		case kindURL:
			payload, err = client.ScreenshotURL(ctx, j.Input, opts)
		case kindHTML:
			html, rerr := readInput(j.Input)
			if rerr != nil {
				return rerr
			}
			payload, err = client.ScreenshotHTML(ctx, string(html), opts)
		case kindMarkdown:
			md, rerr := readInput(j.Input)
			if rerr != nil {
				return rerr
			}
			payload, err = client.ScreenshotMarkdown(ctx, markdownTemplate, map[string]string{"index.md": string(md)}, opts)
		default:
			return fmt.Errorf("%w: cannot screenshot %s", ErrUnsupportedInput, j.Input)
		}
		if err != nil {
			return err
		}

	case kind == kindOffice:
		opts, err := buildDocumentOptions(f, cfg)
		if err != nil {
			return err
		}
		data, rerr := readInput(j.Input)
		if rerr != nil {
			return rerr
		}
		payload, err = client.PDFFromDocument(ctx, filepath.Base(j.Input), data, opts)
		if err != nil {
			return err
		}

	default:
		opts, err := buildWebOptions(f, cfg)
		if err != nil {
			return err
		}
		switch kind {
		case kindURL:
			payload, err = client.PDFFromURL(ctx, j.Input, opts)
		case kindHTML:
			html, rerr := readInput(j.Input)
			if rerr != nil {
				return rerr
			}
			payload, err = client.PDFFromHTML(ctx, string(html), opts)
		case kindMarkdown:
			md, rerr := readInput(j.Input)
			if rerr != nil {
				return rerr
			}
			payload, err = client.PDFFromMarkdown(ctx, markdownTemplate, map[string]string{"index.md": string(md)}, opts)
		}
		if err != nil {
			return err
		}
	}

	return writeOutput(j.Output, payload)
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
		}
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

// runConvert converts all inputs, in parallel when there is more than one.
func runConvert(ctx context.Context, client *gotenberg.Client, f *cliFlags, cfg *Config, inputs []string, log zerolog.Logger) error {
	if len(inputs) == 0 {
		return ErrNoInput
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}

	ext := ".pdf"
	if f.screenshot {
		ext = screenshotExt(f.format)
	}

	single := len(inputs) == 1
	outDir := f.output
	jobs := make([]job, len(inputs))
	for i, input := range inputs {
		if single && outDir != "" && filepath.Ext(outDir) != "" {
			jobs[i] = job{Input: input, Output: outDir}
			continue
		}
		jobs[i] = job{Input: input, Output: outputPath(input, outDir, ext)}
	}

	workers := resolveWorkers(cfg.Workers)
	if workers > len(jobs) {
		workers = len(jobs)
	}
	log.Debug().Int("workers", workers).Int("jobs", len(jobs)).Msg("starting conversions")

	jobCh := make(chan job)
	results := make(chan result, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				start := time.Now()
				err := convertOne(ctx, client, f, cfg, j)
				results <- result{Input: j.Input, Output: j.Output, Err: err, Duration: time.Since(start)}
			}
		}()
	}
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()
	close(results)

	var firstErr error
	for r := range results {
		if r.Err != nil {
			log.Error().Str("input", r.Input).Err(r.Err).Msg("conversion failed")
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		log.Info().Str("input", r.Input).Str("output", r.Output).Dur("took", r.Duration).Msg("converted")
	}
	return firstErr
}
