package cmd

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abyssdigger/logvisor"
	"github.com/abyssdigger/logvisor/internal/config"
)

// sinkOptions are the sink related flags shared by all commands.
type sinkOptions struct {
	configPath string
	files      []string
	color      string
	noConsole  bool
	keepOpen   bool
}

func (o *sinkOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.configPath, "config", "c", "", "path to a YAML configuration file")
	flags.StringArrayVarP(&o.files, "file", "f", nil, "append reports to this file (repeatable)")
	flags.StringVar(&o.color, "color", "", "console colors: auto, always or never")
	flags.BoolVar(&o.noConsole, "no-console", false, "do not write to stderr")
	flags.BoolVar(&o.keepOpen, "keep-open", false, "keep log files open between reports")
}

// registry builds a registry from the configuration file (if any) with the
// flags applied on top of it.
func (o *sinkOptions) registry() (*logvisor.Registry, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, errors.Wrap(err, "load configuration")
		}

		cfg = loaded
	}

	if o.color != "" {
		cfg.Color = o.color
	}

	if o.noConsole {
		cfg.Console = false
	}

	if o.keepOpen {
		cfg.KeepOpen = true
	}

	for _, path := range o.files {
		if !slices.Contains(cfg.Files, path) {
			cfg.Files = append(cfg.Files, path)
		}
	}

	reg := logvisor.New()
	if err := config.Apply(reg, cfg); err != nil {
		return nil, errors.Wrap(err, "apply configuration")
	}

	return reg, nil
}
