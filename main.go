package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/swiftmodeler/internal/analyzer"
	"github.com/mcncl/swiftmodeler/internal/config"
	"github.com/mcncl/swiftmodeler/internal/errors"
	"github.com/mcncl/swiftmodeler/internal/formatter"
	"github.com/mcncl/swiftmodeler/internal/generator"
	"github.com/mcncl/swiftmodeler/internal/logging"
	"github.com/mcncl/swiftmodeler/internal/models"
	"github.com/mcncl/swiftmodeler/internal/parser"
	"github.com/mcncl/swiftmodeler/internal/schema"
	"github.com/mcncl/swiftmodeler/internal/selector"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string  `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string  `help:"Path to output Swift file. If not specified, writes to stdout." short:"o" type:"path"`
	Kind        string  `help:"Declaration keyword to generate (struct or class)." short:"k" enum:"struct,class" default:"struct"`
	Raw         bool    `help:"Treat the input as a RAW API description (JSON Schema style interface body) instead of a JSON sample."`
	Optionality string  `help:"Property declaration style: required, optional or implicit. Overrides the config file." short:"m"`
	Prefix      *string `help:"Prefix for generated model names."`
	Suffix      *string `help:"Suffix for generated model names."`
	Parent      *string `help:"Parent type or protocol for generated models, e.g. HandyJSON or Codable."`
	CamelCase   bool    `help:"Convert JSON keys to lowerCamelCase property names."`
	Select      string  `help:"jq expression selecting the object to model from the JSON sample." short:"s"`
	Into        string  `help:"Insert the generated models into an existing Swift file." type:"path"`
	Line        int     `help:"Line after which to insert when using --into (0 appends)." default:"0"`
	Config      string  `help:"Path to a config file. Defaults to a discovered .swiftmodeler.yml." short:"c" type:"path"`
	Debug       bool    `help:"Enable debug logging." short:"d"`
	LogFile     string  `help:"Write logs to a rotating file instead of stderr." type:"path"`
	Version     bool    `help:"Show version information." short:"v"`
	Interactive bool    `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("swiftmodeler"),
		kong.Description("A tool to convert JSON samples and API descriptions to Swift models"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("swiftmodeler version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	cleanup, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	if err := run(&Context{Config: cfg}); err != nil {
		slog.Debug("generation failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: swiftmodeler --help\n")
		_ = cleanup()
		os.Exit(1)
	}
}

// loadConfig merges the config file with the command line flags
func loadConfig() (*config.Config, error) {
	overrides := config.Overrides{
		Optionality: CLI.Optionality,
		Prefix:      CLI.Prefix,
		Suffix:      CLI.Suffix,
		Parent:      CLI.Parent,
		LogFile:     CLI.LogFile,
	}
	if CLI.CamelCase {
		camel := true
		overrides.CamelCaseFields = &camel
	}
	if CLI.Debug {
		overrides.LogLevel = "debug"
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, overrides)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) (func() error, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.FilePath = cfg.Logging.File

	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to open log file '%s'", logCfg.FilePath), err)
	}
	return cleanup, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	kind, err := config.Command(CLI.Kind, CLI.Raw)
	if err != nil {
		return errors.NewInputError(err.Error(), nil)
	}
	if kind.IsRAW() && CLI.Select != "" {
		return errors.NewInputError("--select cannot be combined with --raw", nil)
	}

	// 1. Read the input text
	text, err := readInput()
	if err != nil {
		return err
	}

	// 2. Decode, infer and render
	var block models.DeclarationBlock
	if kind.IsRAW() {
		block, err = renderDescription(text, kind, cfg)
	} else {
		block, err = renderSample(text, kind, cfg)
	}
	if err != nil {
		return err
	}
	slog.Debug("rendered declaration", "command", kind, "lines", len(block))

	// 3. Output the result
	if CLI.Into != "" {
		return spliceInto(block, cfg)
	}
	return writeOutput(strings.Join(block, "\n"))
}

// renderSample models a JSON sample object
func renderSample(text string, kind config.CommandKind, cfg *config.Config) (models.DeclarationBlock, error) {
	obj, err := parser.DecodeTopLevelWithOptions(text, parser.Options{MaxDepth: cfg.Decode.MaxDepth})
	if err != nil {
		return nil, err
	}
	slog.Debug("decoded JSON sample", "members", obj.Len())

	if CLI.Select != "" {
		obj, err = selector.Select(obj, CLI.Select)
		if err != nil {
			return nil, err
		}
		slog.Debug("selected sub-document", "expression", CLI.Select, "members", obj.Len())
	}

	fields := analyzer.InferFields(obj)
	return generator.Render(fields, kind, cfg.RenderConfig()), nil
}

// renderDescription models a RAW API description, one declaration per object schema
func renderDescription(text string, kind config.CommandKind, cfg *config.Config) (models.DeclarationBlock, error) {
	s, err := schema.ParseWithOptions(text, parser.Options{MaxDepth: cfg.Decode.MaxDepth})
	if err != nil {
		return nil, err
	}

	ms, err := schema.Convert(s)
	if err != nil {
		return nil, err
	}
	slog.Debug("converted API description", "models", len(ms))

	return generator.RenderModels(ms, kind, cfg.RenderConfig()), nil
}

// readInput reads the input text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := parser.ReadFile(CLI.Input)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	return string(data), nil
}

// writeOutput writes code to file or stdout
func writeOutput(code string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(code+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		slog.Info("generated Swift models", "path", CLI.Output)
		return nil
	}

	_, err := fmt.Println(code)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// spliceInto inserts block into the --into file, ensuring the configured
// modules are imported. The result replaces the file unless --output is set.
func spliceInto(block models.DeclarationBlock, cfg *config.Config) error {
	source, err := os.ReadFile(CLI.Into)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.NewOutputError(fmt.Sprintf("failed to read '%s'", CLI.Into), err)
	}

	result := formatter.NewFormatter(cfg.Modules).Format(string(source), CLI.Line, block)

	target := CLI.Into
	if CLI.Output != "" {
		target = CLI.Output
	}
	if err := os.WriteFile(target, []byte(result), 0644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", target), err)
	}
	slog.Info("inserted Swift models", "path", target, "line", CLI.Line)
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "SwiftModeler Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return builder.String(), nil
}
