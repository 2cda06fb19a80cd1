// Package cmd — render command.
// This is the main command that orchestrates the pipeline:
// source → segment → render → write.
//
// It handles flag validation, renderer selection, source resolution, and --watch.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/gaurav-prasanna/briefpipe/core/extract"
	"github.com/gaurav-prasanna/briefpipe/core/fetch"
	"github.com/gaurav-prasanna/briefpipe/core/markup"
	"github.com/gaurav-prasanna/briefpipe/core/normalize"
	"github.com/gaurav-prasanna/briefpipe/core/output"
	"github.com/gaurav-prasanna/briefpipe/core/render"
	"github.com/gaurav-prasanna/briefpipe/internal/watch"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagHTML bool
	flagJSON bool
	flagPDF  bool
	flagText bool

	flagBrand      string
	flagURL        string
	flagGenerate   bool
	flagOutputDir  string
	flagStdout     bool
	flagSanitize   bool
	flagStandalone bool
	flagWatch      bool
	flagWidth      int
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A9DC76"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6188"))
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a brief to the specified output format",
	Long: `Render reads brief markdown, segments it into blocks, and converts it to the
specified output format (HTML, JSON, PDF, or terminal text).

The brief comes from a file argument, stdin ("-" or no source), the brief API
(--brand), or a web page (--url).

Examples:
  briefpipe render --brand bebodywise --html --standalone
  briefpipe render --brand man_matters --generate --pdf --output_dir ./out
  briefpipe render notes/weekly.md --text --stdout
  briefpipe render notes/weekly.md --html --watch
  cat brief.md | briefpipe render - --json --stdout
  briefpipe render --url https://example.com/briefs/latest --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	// Output format flags (mutually exclusive).
	renderCmd.Flags().BoolVar(&flagHTML, "html", false, "Output an HTML fragment")
	renderCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	renderCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	renderCmd.Flags().BoolVar(&flagText, "text", false, "Output styled terminal text")

	// Source flags.
	renderCmd.Flags().StringVar(&flagBrand, "brand", "", "Fetch the latest brief for a brand from the API")
	renderCmd.Flags().StringVar(&flagURL, "url", "", "Extract a brief from a web page")
	renderCmd.Flags().BoolVar(&flagGenerate, "generate", false, "Generate a fresh brief (requires --brand)")

	// HTML-specific flags.
	renderCmd.Flags().BoolVar(&flagSanitize, "sanitize", false, "Sanitize HTML output")
	renderCmd.Flags().BoolVar(&flagStandalone, "standalone", false, "Wrap HTML output in a full page")

	// Text-specific flags.
	renderCmd.Flags().IntVar(&flagWidth, "width", 0, "Wrap width for --text (default: config text_width)")

	// Output destination.
	renderCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: config output_dir or current directory)")
	renderCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write to stdout instead of a file")
	renderCmd.Flags().BoolVar(&flagWatch, "watch", false, "Re-render whenever the input file changes")
}

// source is a resolved brief ready for segmentation.
type source struct {
	name     string
	markdown string
	meta     core.BriefMetadata
}

func runRender(cmd *cobra.Command, args []string) error {
	// --- Validate flags ---
	if err := validateFlags(args); err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	var writer *output.Writer
	if !flagStdout {
		dir := flagOutputDir
		if dir == "" {
			dir = cfg.OutputDir
		}
		writer, err = output.New(dir)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	once := func() error {
		src, err := loadSource(ctx, cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return renderSource(cmd.OutOrStdout(), src, renderer, writer)
	}

	if err := once(); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}

	path := args[0]
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", path)
	return watch.File(ctx, path, log, func() error {
		log.WatchEvent(path)
		if err := once(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("  ✗ Error: "+err.Error()))
		}
		return nil
	})
}

// renderSource runs a resolved brief through segment → render → write.
func renderSource(stdout io.Writer, src *source, renderer core.Renderer, writer *output.Writer) error {
	start := time.Now()
	blocks := markup.Segment(src.markdown)

	data, err := renderer.Render(blocks, src.meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Rendered(renderer.Extension(), len(blocks), time.Since(start))

	if writer == nil {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}

	path, err := writer.Write(src.name, data, renderer.Extension())
	if err != nil {
		return err
	}
	log.Written(path, len(data))
	fmt.Fprintln(stdout, successStyle.Render("✓ Written: "+path))
	return nil
}

// loadSource resolves the brief named by args and flags.
func loadSource(ctx context.Context, stdin io.Reader, args []string) (*source, error) {
	now := time.Now().UTC()

	switch {
	case flagBrand != "":
		return loadBrand(ctx, now)

	case flagURL != "":
		return loadPage(ctx, now)

	case len(args) == 1 && args[0] != "-":
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			log.SourceError(path, err)
			return nil, fmt.Errorf("reading brief: %w", err)
		}
		log.BriefFetched(path, len(data))
		return &source{
			name:     output.NameForFile(path),
			markdown: string(data),
			meta:     core.BriefMetadata{Source: path, RenderedAt: now},
		}, nil

	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			log.SourceError("stdin", err)
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		log.BriefFetched("stdin", len(data))
		return &source{
			name:     "stdin",
			markdown: string(data),
			meta:     core.BriefMetadata{Source: "stdin", RenderedAt: now},
		}, nil
	}
}

// loadBrand fetches, or generates, the brief for --brand from the API.
func loadBrand(ctx context.Context, now time.Time) (*source, error) {
	client := fetch.NewBriefClient(cfg.APIURL, cfg.Timeout)

	var (
		brief *core.Brief
		err   error
	)
	if flagGenerate {
		start := time.Now()
		brief, err = client.Generate(ctx, flagBrand)
		if err == nil {
			log.BriefGenerated(flagBrand, brief.ID, time.Since(start))
		}
	} else {
		brief, err = client.Fetch(ctx, flagBrand)
	}
	if err != nil {
		log.SourceError(flagBrand, err)
		if errors.Is(err, core.ErrBriefNotFound) {
			return nil, fmt.Errorf("%w (run with --generate to create one)", err)
		}
		return nil, err
	}
	log.BriefFetched(flagBrand, len(brief.Markdown))

	brand, _ := core.LookupBrand(flagBrand)
	return &source{
		name:     output.NameForBrand(brand.Key),
		markdown: brief.Markdown,
		meta: core.BriefMetadata{
			Brand:       brand.Key,
			BrandLabel:  brand.Label,
			BriefID:     brief.ID,
			Source:      client.BriefURL(brand.Key),
			GeneratedAt: brief.GeneratedAt,
			RenderedAt:  now,
		},
	}, nil
}

// loadPage runs --url through fetch → extract → normalize.
func loadPage(ctx context.Context, now time.Time) (*source, error) {
	fetcher := fetch.New(cfg.Timeout)
	extractor := extract.New()
	normalizer := normalize.New()

	// 1. Fetch
	result, err := fetcher.Fetch(ctx, flagURL)
	if err != nil {
		log.SourceError(flagURL, err)
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract main content
	content, err := extractor.Extract(result.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	// 3. Normalize to brief markdown
	markdown, err := normalizer.Normalize(content)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	log.BriefFetched(flagURL, len(markdown))

	parsed, _ := url.Parse(flagURL)
	return &source{
		name:     parsed.Host + parsed.Path,
		markdown: markdown,
		meta:     core.BriefMetadata{Source: flagURL, RenderedAt: now},
	}, nil
}

// validateFlags checks that exactly one output format is chosen and
// that the source flags are consistent.
func validateFlags(args []string) error {
	// Count output formats.
	formatCount := 0
	for _, set := range []bool{flagHTML, flagJSON, flagPDF, flagText} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --html, --json, --pdf, or --text")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	// Count sources.
	sourceCount := len(args)
	if flagBrand != "" {
		sourceCount++
	}
	if flagURL != "" {
		sourceCount++
	}
	if sourceCount > 1 {
		return fmt.Errorf("only one source allowed per run: a file, --brand, or --url")
	}

	if flagBrand != "" {
		if _, ok := core.LookupBrand(flagBrand); !ok {
			return fmt.Errorf("%w: %q (see briefpipe brands)", core.ErrUnknownBrand, flagBrand)
		}
	}
	if flagGenerate && flagBrand == "" {
		return fmt.Errorf("--generate requires --brand")
	}

	if flagURL != "" {
		parsed, err := url.Parse(flagURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", flagURL)
		}
	}

	if flagWatch && (len(args) == 0 || args[0] == "-") {
		return fmt.Errorf("--watch requires a file argument")
	}
	if flagWidth < 0 {
		return fmt.Errorf("--width cannot be negative")
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagHTML:
		return render.NewHTMLRenderer(flagSanitize, flagStandalone), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagText:
		width := flagWidth
		if width == 0 && cfg != nil {
			width = cfg.TextWidth
		}
		return render.NewTextRenderer(width), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
