package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrjoshuak/htmlcase"
	"github.com/mrjoshuak/htmlcase/internal/config"
	"github.com/mrjoshuak/htmlcase/internal/logger"
	"github.com/mrjoshuak/htmlcase/internal/version"
)

// run executes the command tree with an isolated config file and returns
// stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  quiet: true\n"), 0o600))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestTransformStdin(t *testing.T) {
	out, err := run(t, `<p>Hello <b>world</b></p><span>keep</span>`, "transform", "-t", "uppercase")
	require.NoError(t, err)
	assert.Equal(t, `<p>HELLO <b>WORLD</b></p><span>keep</span>`, out)
}

func TestTransformFormats(t *testing.T) {
	input := `<p>One</p><p>Two <i>x</i></p>`

	out, err := run(t, input, "transform", "-t", "lowercase", "--format", "json", "--compact")
	require.NoError(t, err)
	assert.JSONEq(t, `{"html":"<p>one</p><p>two <i>x</i></p>","targets":2,"text_nodes":3}`, out)

	out, err = run(t, input, "transform", "-t", "lowercase", "--format", "yaml")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "<p>one</p><p>two <i>x</i></p>", got["html"])
	assert.Equal(t, 2, got["targets"])
	assert.Equal(t, 3, got["text_nodes"])
}

func TestTransformTargets(t *testing.T) {
	input := `<p>Para</p><ul><li>Item</li></ul>`

	out, err := run(t, input, "transform", "-t", "uppercase", "--selector", "li")
	require.NoError(t, err)
	assert.Equal(t, `<p>Para</p><ul><li>ITEM</li></ul>`, out)

	out, err = run(t, input, "transform", "-t", "uppercase", "--xpath", "//p")
	require.NoError(t, err)
	assert.Equal(t, `<p>PARA</p><ul><li>Item</li></ul>`, out)

	_, err = run(t, input, "transform", "-t", "uppercase", "--selector", "li", "--xpath", "//p")
	assert.Error(t, err)
}

func TestTransformNormalizeFlag(t *testing.T) {
	out, err := run(t, "<p>ﬁle</p>", "transform", "-t", "lowercase", "--normalize", "nfkc")
	require.NoError(t, err)
	assert.Equal(t, "<p>file</p>", out)

	_, err = run(t, "<p>x</p>", "transform", "-t", "lowercase", "--normalize", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform.normalize")
}

func TestTransformBatch(t *testing.T) {
	in := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	a := filepath.Join(in, "a.html")
	b := filepath.Join(in, "b.htm")
	require.NoError(t, os.WriteFile(a, []byte(`<p>alpha</p>`), 0o600))
	require.NoError(t, os.WriteFile(b, []byte(`<p>beta</p>`), 0o600))

	_, err := run(t, "", "transform", "-t", "uppercase", "-i", a+","+b, "--output-dir", outDir, "--format", "json")
	require.NoError(t, err)

	for name, want := range map[string]string{"a.json": "<p>ALPHA</p>", "b.json": "<p>BETA</p>"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		var res htmlcase.Result
		require.NoError(t, json.Unmarshal(data, &res))
		assert.Equal(t, want, res.HTML)
		assert.Equal(t, 1, res.Targets)
	}
}

func TestTransformOutputFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.html")

	out, err := run(t, `<p>file</p>`, "transform", "-t", "uppercase", "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `<p>FILE</p>`, string(data))
}

func TestTransformErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{name: "missing directive", stdin: "<p>x</p>", args: []string{"transform"}, wantErr: "transform"},
		{name: "unknown directive", stdin: "<p>x</p>", args: []string{"transform", "-t", "title"}, wantErr: "unknown transform"},
		{name: "bad format", stdin: "<p>x</p>", args: []string{"transform", "-t", "uppercase", "--format", "xml"}, wantErr: "invalid output format"},
		{name: "bad max input", stdin: "<p>x</p>", args: []string{"transform", "-t", "uppercase", "--max-input", "huge"}, wantErr: "--max-input"},
		{name: "max input overflows", stdin: "<p>x</p>", args: []string{"transform", "-t", "uppercase", "--max-input", "10EB"}, wantErr: "too large"},
		{name: "too large", stdin: "<p>" + strings.Repeat("x", 100) + "</p>", args: []string{"transform", "-t", "uppercase", "--max-input", "10B"}, wantErr: "1 of 1 inputs failed"},
		{name: "empty input", stdin: "  ", args: []string{"transform", "-t", "uppercase"}, wantErr: "1 of 1 inputs failed"},
		{name: "missing file", args: []string{"transform", "-t", "uppercase", "-i", "/nonexistent/x.html"}, wantErr: "1 of 1 inputs failed"},
		{name: "output with many inputs", args: []string{"transform", "-t", "uppercase", "-i", "a,b", "-o", "x"}, wantErr: "single input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTransformWarnsWhenNothingMatched(t *testing.T) {
	tests := []struct {
		name  string
		input string
		warn  bool
	}{
		{name: "paragraph matched", input: "<p>x</p>", warn: false},
		{name: "no paragraphs", input: "<div>x</div>", warn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &bytes.Buffer{}
			logger.Init(logger.Options{Output: logs})
			t.Cleanup(func() { logger.Init(logger.Options{}) })

			cmd := newTransformCmd(&app{})
			var out bytes.Buffer
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetOut(&out)

			a := &app{}
			err := a.transformOne(cmd, htmlcase.New(), htmlcase.Uppercase, "-", FormatHTML, transformFlags{})
			require.NoError(t, err)
			if tt.warn {
				assert.Contains(t, logs.String(), "level=WARN")
				assert.Contains(t, logs.String(), "no elements matched")
			} else {
				assert.NotContains(t, logs.String(), "no elements matched")
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version.Name+" "+version.String()+"\n", out)

	out, err = run(t, "", "version", "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")

	out, err = run(t, "", "version", "--json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Name, info.Name)
}

func TestRunServeStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &config.Config{Server: config.Server{
		Addr:            "127.0.0.1:0",
		MaxBodySize:     "1MB",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}}
	assert.NoError(t, runServe(ctx, cfg))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{"html": FormatHTML, "JSON": FormatJSON, " yaml ": FormatYAML, "yml": FormatYAML} {
		got, err := parseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := parseFormat("text")
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "", outputPath("a.html", FormatHTML, transformFlags{}))
	assert.Equal(t, "x.html", outputPath("a.html", FormatHTML, transformFlags{output: "x.html"}))
	assert.Equal(t, filepath.Join("out", "page.yaml"), outputPath("dir/page.html", FormatYAML, transformFlags{outputDir: "out"}))
	assert.Equal(t, filepath.Join("out", "stdin.json"), outputPath("-", FormatJSON, transformFlags{outputDir: "out"}))
}
