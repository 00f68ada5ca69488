// Package cli implements the twittertext command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"twittertext/internal/adapters/configstore"
	"twittertext/pkg/log"
	"twittertext/pkg/log/transporters"
	"twittertext/pkg/twittertext"
	"twittertext/pkg/twittertext/scanner"
)

// Build-time variables injected via ldflags.
var Version = "dev"

type rootOptions struct {
	logLevel    log.Level
	logFormat   string
	presetsPath string
	maxBytes    int
	backend     string
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	opts    *rootOptions
	logger  *log.Logger
	configs *configstore.Store
	extract []twittertext.Option
}

// NewRootCommand returns the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{logLevel: log.Warn}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:           "twittertext",
		Short:         "Extract entities from and weigh the length of short social posts",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				a.logger.Close()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.Var(&opts.logLevel, "log-level", "log level (trace, debug, info, warn, error, off)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format on stderr (text, json)")
	pf.StringVar(&opts.presetsPath, "presets", os.Getenv("TWITTERTEXT_PRESETS"), "YAML file with extra weighting presets (env TWITTERTEXT_PRESETS)")
	pf.IntVar(&opts.maxBytes, "max-bytes", 1<<20, "largest accepted input in bytes")
	pf.StringVar(&opts.backend, "backend", "scanner", "entity scanner ("+strings.Join(scanner.BackendNames(), ", ")+")")

	cmd.AddCommand(
		newExtractCmd(a),
		newParseCmd(a),
		newValidateCmd(a),
		newTLDCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	format, err := transporters.ParseFormat(a.opts.logFormat)
	if err != nil {
		return err
	}
	w := transporters.NewWriter("stderr", format, cmd.ErrOrStderr())
	a.logger = log.New(a.opts.logLevel, w)

	b, ok := scanner.BackendByName(a.opts.backend)
	if !ok {
		return fmt.Errorf("unknown backend %q (have %s)", a.opts.backend, strings.Join(scanner.BackendNames(), ", "))
	}
	a.extract = []twittertext.Option{twittertext.WithBackend(b)}

	if a.opts.presetsPath == "" {
		a.configs = configstore.New(a.logger)
		return nil
	}
	a.configs, err = configstore.Load(a.opts.presetsPath, a.logger)
	return err
}

// readText joins args, or reads stdin when the only argument is "-".
func readText(cmd *cobra.Command, args []string, maxBytes int) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), int64(maxBytes)+1))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	return strings.Join(args, " "), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
