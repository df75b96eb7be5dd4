package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mrjoshuak/htmlcase"
	"github.com/mrjoshuak/htmlcase/internal/config"
	"github.com/mrjoshuak/htmlcase/internal/logger"
)

type transformFlags struct {
	directive string
	inputs    string
	output    string
	outputDir string
	selector  string
	xpath     string
	format    string
	compact   bool
	maxInput  string
}

func newTransformCmd(a *app) *cobra.Command {
	var f transformFlags

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform HTML files or standard input",
		Long: `Rewrite the case of paragraph text in one or more HTML inputs.

Examples:
  htmlcase transform -t uppercase -i article.html -o article.upper.html
  htmlcase transform -t lowercase -i a.html,b.html --output-dir ./out --format json
  cat article.html | htmlcase transform -t uppercase --selector "h1, p"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTransform(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.directive, "transform", "t", "", "case to apply: uppercase or lowercase (required)")
	flags.StringVarP(&f.inputs, "input", "i", "-", "input HTML file path(s), comma-separated, '-' for stdin")
	flags.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&f.outputDir, "output-dir", "", "output directory for batch processing")
	flags.StringVar(&f.selector, "selector", "", "CSS selector for target elements (default: p)")
	flags.StringVar(&f.xpath, "xpath", "", "XPath expression for target elements")
	flags.StringVar(&f.format, "format", string(FormatHTML), "output format: html, json, yaml")
	flags.BoolVar(&f.compact, "compact", false, "output compact JSON without indentation")
	flags.StringVar(&f.maxInput, "max-input", "10MB", "maximum size of each input (0 = unlimited)")
	flags.String("normalize", "none", "Unicode normalization of rewritten text: none, nfc, nfd, nfkc, nfkd")

	_ = cmd.MarkFlagRequired("transform")
	cmd.MarkFlagsMutuallyExclusive("selector", "xpath")
	cmd.MarkFlagsMutuallyExclusive("output", "output-dir")
	return cmd
}

func (a *app) runTransform(cmd *cobra.Command, f transformFlags) error {
	directive, err := htmlcase.ParseDirective(f.directive)
	if err != nil {
		return err
	}
	format, err := parseFormat(f.format)
	if err != nil {
		return err
	}
	norm, err := a.cfg.Transform.Normalization()
	if err != nil {
		return err
	}

	var limit int64
	if s := strings.TrimSpace(f.maxInput); s != "" && s != "0" {
		limit, err = config.ParseSize(s)
		if err != nil {
			return fmt.Errorf("invalid --max-input %q: %w", f.maxInput, err)
		}
	}

	t := htmlcase.New(
		htmlcase.WithSelector(f.selector),
		htmlcase.WithXPath(f.xpath),
		htmlcase.WithNormalization(norm),
		htmlcase.WithMaxInputSize(limit),
	)

	inputs := splitInputs(f.inputs)
	if f.output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output takes a single input, got %d; use --output-dir", len(inputs))
	}
	if f.outputDir != "" {
		if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	logger.Debug("transform starting",
		"directive", directive,
		"inputs", len(inputs),
		"format", format,
		"max_input", humanize.Bytes(uint64(limit)),
	)

	var failed int
	for _, in := range inputs {
		if err := a.transformOne(cmd, t, directive, in, format, f); err != nil {
			logger.Error("transform failed", "input", in, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

func (a *app) transformOne(cmd *cobra.Command, t htmlcase.Transformer, d htmlcase.Directive, in string, format OutputFormat, f transformFlags) error {
	var r io.Reader = cmd.InOrStdin()
	if in != "-" {
		file, err := os.Open(in)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}

	res, err := t.TransformFromReader(r, d)
	if err != nil {
		return err
	}
	logger.Debug("transformed", "input", in, "targets", res.Targets, "text_nodes", res.TextNodes)
	if res.Targets == 0 {
		logger.Warn("no elements matched", "input", in)
	}

	data, err := encodeResult(res, format, f.compact)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	path := outputPath(in, format, f)
	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info("wrote output", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func splitInputs(s string) []string {
	var inputs []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			inputs = append(inputs, p)
		}
	}
	if len(inputs) == 0 {
		return []string{"-"}
	}
	return inputs
}

// outputPath returns where the result for input in is written, or "" for
// stdout. Batch output keeps the input's base name with the format's
// extension.
func outputPath(in string, format OutputFormat, f transformFlags) string {
	switch {
	case f.outputDir != "" && in != "-":
		base := filepath.Base(in)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join(f.outputDir, name+format.Ext())
	case f.outputDir != "":
		return filepath.Join(f.outputDir, "stdin"+format.Ext())
	default:
		return f.output
	}
}
