// Package commands implements the CLI commands for htmlcase.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mrjoshuak/htmlcase/internal/config"
	"github.com/mrjoshuak/htmlcase/internal/logger"
)

// flagKeys maps config keys to the flags that override them. A flag is
// bound only when the running command defines it.
var flagKeys = map[string]string{
	"log.debug":               "debug",
	"log.quiet":               "quiet",
	"log.json":                "log-json",
	"server.addr":             "addr",
	"server.max_body_size":    "max-body",
	"server.read_timeout":     "read-timeout",
	"server.write_timeout":    "write-timeout",
	"server.shutdown_timeout": "shutdown-timeout",
	"transform.normalize":     "normalize",
}

// app carries state shared by the commands of one invocation.
type app struct {
	cfg     *config.Config
	logOut  io.Writer
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{logOut: os.Stderr}

	cmd := &cobra.Command{
		Use:   "htmlcase",
		Short: "Rewrite the letter case of text inside HTML paragraphs",
		Long: `htmlcase uppercases or lowercases the text inside <p> elements of an
HTML fragment, leaving markup, attributes and all other text untouched.

It runs as an HTTP service or transforms files from the command line.

Examples:
  # Serve POST /transform on :8080
  htmlcase serve

  # Uppercase the paragraphs of a file
  htmlcase transform -t uppercase -i page.html

  # Lowercase list items read from stdin, printing JSON with counters
  cat page.html | htmlcase transform -t lowercase --xpath "//li" --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/"+config.FileName+".yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("log-json", false, "log as JSON")

	cmd.AddCommand(
		newServeCmd(a),
		newTransformCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// load reads configuration, binds the running command's flags over it and
// initializes the logger.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(logger.Options{
		Debug:  cfg.Log.Debug,
		Quiet:  cfg.Log.Quiet,
		JSON:   cfg.Log.JSON,
		Output: a.logOut,
	})
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config file", "path", used)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		logError("%v", err)
		return err
	}
	return nil
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
