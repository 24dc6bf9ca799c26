package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the convert invocation.
type cliFlags struct {
	server     string
	output     string
	config     string
	trace      string
	screenshot bool
	format     string
	landscape  bool
	paperSize  string
	pageRanges string
	pdfa       string
	pdfua      bool
	workers    int
	timeout    string
	quiet      bool
	verbose    bool
	version    bool
}

// parseFlags parses the command line and returns positional args (inputs).
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("gotenberg", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.server, "server", "s", "", "Gotenberg server URL (default http://localhost:3000)")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.StringVar(&f.trace, "trace", "", "request trace id (default: generated)")
	fs.BoolVar(&f.screenshot, "screenshot", false, "capture a screenshot instead of a PDF")
	fs.StringVar(&f.format, "format", "", "screenshot format: png, jpeg, webp")
	fs.BoolVar(&f.landscape, "landscape", false, "landscape orientation")
	fs.StringVarP(&f.paperSize, "paper-size", "p", "", "paper size: a4, letter, legal, ...")
	fs.StringVar(&f.pageRanges, "pages", "", "page ranges, e.g. 1-5,8")
	fs.StringVar(&f.pdfa, "pdfa", "", "PDF/A profile: PDF/A-1b, PDF/A-2b, PDF/A-3b")
	fs.BoolVar(&f.pdfua, "pdfua", false, "enable PDF/UA accessibility")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-conversion timeout (e.g. 30s, 2m)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-request details")
	fs.BoolVar(&f.version, "version", false, "print the server version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: gotenberg [flags] <input>...

Converts URLs, HTML, Markdown and office documents to PDF (or screenshots)
through a Gotenberg server.

Inputs:
  https://...          rendered by Chromium
  page.html            rendered by Chromium
  notes.md             wrapped in a template, rendered by Chromium
  report.docx, *.odt   converted by LibreOffice

Examples:
  gotenberg -o out.pdf https://example.com
  gotenberg --screenshot --format png page.html
  gotenberg -w 4 -o build/ docs/*.md

Flags:
  -s, --server       Gotenberg server URL
  -o, --output       output file, or directory for multiple inputs
  -c, --config       YAML config file
  -p, --paper-size   a4, letter, legal, ledger, tabloid, a0-a6
      --pages        page ranges, e.g. 1-5,8
      --landscape    landscape orientation
      --screenshot   capture a screenshot instead of a PDF
      --format       screenshot format: png, jpeg, webp
      --pdfa         PDF/A profile
      --pdfua        enable PDF/UA
      --trace        request trace id
  -w, --workers      parallel conversions (0 = auto)
  -t, --timeout      per-conversion timeout
  -q, --quiet        only show errors
  -v, --verbose      show per-request details
      --version      print the server version and exit
`)
}
