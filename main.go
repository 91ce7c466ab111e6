package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mcncl/rolodex/internal/config"
	"github.com/mcncl/rolodex/internal/decode"
	"github.com/mcncl/rolodex/internal/errors"
	"github.com/mcncl/rolodex/internal/export"
	"github.com/mcncl/rolodex/internal/fetch"
	"github.com/mcncl/rolodex/internal/logging"
	"github.com/mcncl/rolodex/internal/parser"
	"github.com/mcncl/rolodex/internal/render"
	"github.com/mcncl/rolodex/internal/schema"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	URL         string `help:"URL of a contacts feed to fetch instead of reading a file." short:"u"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to config file. If not specified, searches for .rolodex.yml." short:"c" type:"path"`
	Export      string `help:"Export instead of rendering: json or csv." short:"e"`
	KeyStyle    string `help:"Key style for exported output: snake, camel or kebab." short:"k"`
	Detail      int    `help:"Render a detail view of the contact at this index instead of the list." default:"-1"`
	Validate    bool   `help:"Validate the document against the contacts schema before decoding."`
	Schema      string `help:"Path to a custom JSON Schema to validate against (implies --validate)." type:"path"`
	NoColor     bool   `help:"Disable colored output."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	kongParser := kong.Must(&CLI,
		kong.Name("rolodex"),
		kong.Description("A tool to decode, view and export JSON contacts feeds"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := kongParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("rolodex version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: rolodex --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return errors.NewInputError("invalid configuration", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// 1. Obtain the raw document
	raw, err := readRawInput(cfg, logger)
	if err != nil {
		// Error is already wrapped by readRawInput
		return err
	}

	// 2. Optionally validate the document shape up front
	if cfg.Schema.Enabled {
		validator, err := schema.NewValidatorFromFile(cfg.Schema.Path)
		if err != nil {
			return err
		}
		if err := validator.ValidateBytes(raw); err != nil {
			return err
		}
		logger.Debug("document passed schema validation")
	}

	// 3. Parse the raw bytes into a JSON value tree
	doc, err := parser.ParseBytes(raw)
	if err != nil {
		return err
	}

	// 4. Decode into typed contact records
	decoder := decode.NewDecoderWithOptions(cfg.DecodeOptions())
	contacts, err := decoder.Decode(doc)
	if err != nil {
		return errors.NewDecodeError(err.Error(), err)
	}
	logger.Debug("decoded contacts", zap.Int("count", len(contacts)))

	// 5. Export or render
	var out []byte
	if CLI.Export != "" {
		exporter := export.NewExporter(export.Options{
			Format:   cfg.Export.Format,
			KeyStyle: cfg.Export.KeyStyle,
			Indent:   cfg.Export.Indent,
		})
		out, err = exporter.Export(contacts)
		if err != nil {
			return err
		}
	} else {
		renderer := render.NewRenderer(render.Options{
			EmailPlaceholder: cfg.Render.EmailPlaceholder,
			PhonePlaceholder: cfg.Render.PhonePlaceholder,
			Color:            cfg.Render.Color,
		})
		if CLI.Detail >= 0 {
			if CLI.Detail >= len(contacts) {
				return errors.NewRenderError(
					fmt.Sprintf("contact index %d out of range: feed has %d contact(s)", CLI.Detail, len(contacts)),
					nil,
				)
			}
			out = []byte(renderer.Detail(contacts[CLI.Detail]))
		} else {
			out = []byte(renderer.Table(contacts))
		}
	}

	// 6. Output the result
	return writeOutput(out)
}

// loadConfig resolves configuration: the --config flag wins, then a
// discovered .rolodex.yml, then built-in defaults.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to load config '%s'", path), err)
	}
	return cfg, nil
}

// applyFlags overlays command-line flags onto the loaded config.
func applyFlags(cfg *config.Config) {
	if CLI.Export != "" {
		cfg.Export.Format = CLI.Export
	}
	if CLI.KeyStyle != "" {
		cfg.Export.KeyStyle = CLI.KeyStyle
	}
	if CLI.NoColor {
		cfg.Render.Color = false
	}
	if CLI.Debug {
		cfg.Dev.Debug = true
	}
	if CLI.Schema != "" {
		cfg.Schema.Enabled = true
		cfg.Schema.Path = CLI.Schema
	}
	if CLI.Validate {
		cfg.Schema.Enabled = true
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if !cfg.Dev.Debug {
		return zap.NewNop(), nil
	}
	return logging.New(true)
}

// readRawInput obtains the raw document bytes from the configured source:
// a URL, a file, interactive stdin, or piped stdin, in that order.
func readRawInput(cfg *config.Config, logger *zap.Logger) ([]byte, error) {
	if CLI.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout.Std())
		defer cancel()

		fetcher := fetch.NewFetcher(fetch.Options{
			MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
			UserAgent:    cfg.Fetch.UserAgent,
		}, logger)
		return fetcher.Fetch(ctx, CLI.URL)
	}

	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", CLI.Input), err)
		}
		if len(data) == 0 {
			return nil, errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return data, nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return data, nil
}

// writeOutput writes rendered or exported contacts to file or stdout
func writeOutput(data []byte) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, data, 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := os.Stdout.Write(data)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() ([]byte, error) {
	fmt.Fprintln(os.Stderr, "Rolodex Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return []byte(jsonData), nil
}
