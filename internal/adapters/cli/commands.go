package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"twittertext/internal/domain"
	"twittertext/internal/usecases"
	"twittertext/pkg/twittertext"
	"twittertext/pkg/twittertext/hostname"
	"twittertext/pkg/twittertext/tld"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		types     []string
		federated bool
		noUWP     bool
	)
	cmd := &cobra.Command{
		Use:   "extract [flags] TEXT...|-",
		Short: "Print the entities of a text as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, a.opts.maxBytes)
			if err != nil {
				return err
			}
			req := domain.ExtractRequest{Text: text, Types: types, Federated: federated}
			if noUWP {
				off := false
				req.URLWithoutProtocol = &off
			}
			ents, err := usecases.NewExtractEntitiesUseCase(a.opts.maxBytes, a.logger, a.extract...).Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, ents)
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "entity kinds to keep: url, hashtag, mention, list, cashtag, federated")
	cmd.Flags().BoolVar(&federated, "federated", false, "recognize @user@domain mentions")
	cmd.Flags().BoolVar(&noUWP, "no-bare-domains", false, "only extract URLs that carry a protocol")
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var (
		configName string
		urls       bool
		entities   bool
	)
	cmd := &cobra.Command{
		Use:   "parse [flags] TEXT...|-",
		Short: "Print the weighted length verdict of a text as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, a.opts.maxBytes)
			if err != nil {
				return err
			}
			name, cfg, err := a.resolveConfig(configName)
			if err != nil {
				return err
			}
			a.logger.Debug("weighing text", "config", name, "bytes", len(text))

			if !entities {
				return printJSON(cmd, twittertext.Parse(text, cfg, urls, a.extract...))
			}
			v := twittertext.NewValidatingExtractor(cfg, text, a.extract...)
			res := v.ExtractEntitiesWithIndices()
			return printJSON(cmd, domain.Analysis{Config: name, Version: cfg.Version, Text: v.Text(), Results: res.ParseResults, Entities: res.Entities})
		},
	}
	cmd.Flags().StringVarP(&configName, "config", "c", "", "preset name or path to a .json/.yaml configuration")
	cmd.Flags().BoolVar(&urls, "urls", true, "weigh URLs at the transformed length")
	cmd.Flags().BoolVar(&entities, "entities", false, "also print the entities (implies --urls)")
	return cmd
}

// resolveConfig accepts a preset name or a configuration file path.
func (a *app) resolveConfig(ref string) (string, *twittertext.Configuration, error) {
	if ext := strings.ToLower(filepath.Ext(ref)); ext == ".json" || ext == ".yaml" || ext == ".yml" {
		if _, err := os.Stat(ref); err == nil {
			cfg, err := twittertext.LoadConfiguration(ref)
			return filepath.Base(ref), cfg, err
		}
	}
	name, cfg, ok := a.configs.Config(ref)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q (have %s)", domain.ErrUnknownConfig, ref, strings.Join(a.configs.Names(), ", "))
	}
	return name, cfg, nil
}

func newValidateCmd(a *app) *cobra.Command {
	var kind, configName string
	cmd := &cobra.Command{
		Use:   "validate --kind KIND TEXT...|-",
		Short: "Check whether a whole string is a valid tweet, username, list, hashtag or URL",
		Long:  "Kinds: " + strings.Join(usecases.ValidationKinds, ", ") + ". Exits with status 1 when invalid.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, a.opts.maxBytes)
			if err != nil {
				return err
			}
			uc := usecases.NewValidateTextUseCase(a.configs, a.opts.maxBytes, a.logger)
			v, err := uc.Execute(cmd.Context(), domain.ValidateRequest{Kind: kind, Text: text, Config: configName})
			if err != nil {
				return err
			}
			if err := printJSON(cmd, v); err != nil {
				return err
			}
			if !v.Valid {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "tweet", "what to validate")
	cmd.Flags().StringVarP(&configName, "config", "c", "", "preset used for tweet validation")
	return cmd
}

type tldResult struct {
	Name  string `json:"name"`
	ASCII string `json:"ascii,omitempty"`
	Valid bool   `json:"valid"`
}

func newTLDCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "tld NAME...",
		Short: "Look up top-level domains in the embedded table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tld.Err(); err != nil {
				return err
			}
			if list {
				return printJSON(cmd, tld.All())
			}
			if len(args) == 0 {
				return fmt.Errorf("give at least one name, or --list")
			}
			out := make([]tldResult, 0, len(args))
			for _, arg := range args {
				name := strings.ToLower(strings.TrimPrefix(arg, "."))
				r := tldResult{Name: name, Valid: tld.IsValid(name)}
				if ascii, err := hostname.ToASCII(name); err == nil && ascii != name {
					r.ASCII = ascii
				}
				out = append(out, r)
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print every known TLD")
	return cmd
}
