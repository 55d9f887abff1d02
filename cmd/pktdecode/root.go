package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/pktdecode/internal/batch"
	"github.com/danmuck/pktdecode/internal/config"
	"github.com/danmuck/pktdecode/internal/logging"
	"github.com/danmuck/pktdecode/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ErrFailedItems is returned when at least one transmission did not decode.
var ErrFailedItems = errors.New("one or more transmissions failed")

type app struct {
	configPath string
	format     string
	file       string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "pktdecode",
		Short:        "Decode and evaluate hex packet transmissions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.ConfigureRuntime()
			return a.loadConfig(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().StringVarP(&a.format, "format", "o", "", "output format: text, json or yaml")

	for _, mode := range []report.Mode{report.ModeValue, report.ModeVersions, report.ModeTree} {
		root.AddCommand(a.decodeCmd(mode))
	}
	root.AddCommand(a.batchCmd(), initConfigCmd(), checkConfigCmd())
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		format, err := report.ParseFormat(a.format)
		if err != nil {
			return err
		}
		cfg.Format = format
	}
	a.cfg = cfg
	log.Debug().Str("config", a.configPath).Str("mode", string(cfg.Mode)).Str("format", string(cfg.Format)).Msg("config loaded")
	return nil
}

var modeShort = map[report.Mode]string{
	report.ModeValue:    "Evaluate each transmission to a single value",
	report.ModeVersions: "Sum the version fields of each transmission",
	report.ModeTree:     "Print the decoded packet tree of each transmission",
}

func (a *app) decodeCmd(mode report.Mode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(mode) + " [hex...]",
		Short: modeShort[mode],
		Long: `Transmissions are taken from the arguments, or from --file, or from
stdin, one per line. Blank lines are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.items(cmd, args)
			if err != nil {
				return err
			}
			return a.run(cmd, items, mode)
		},
	}
	cmd.Flags().StringVarP(&a.file, "file", "f", "", "read transmissions from a file")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Decode every line of FILE concurrently using the configured mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readFile(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, items, a.cfg.Mode)
		},
	}
}

func initConfigCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config PATH",
		Short: "Write a config file holding the defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func checkConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config PATH",
		Short: "Validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: mode=%s format=%s workers=%d max_depth=%d\n",
				cfg.Mode, cfg.Format, cfg.Batch.Workers, cfg.Limits.MaxDepth)
			return nil
		},
	}
}

func (a *app) items(cmd *cobra.Command, args []string) ([]batch.Item, error) {
	switch {
	case len(args) > 0 && a.file != "":
		return nil, fmt.Errorf("use either arguments or --file, not both")
	case len(args) > 0:
		items := make([]batch.Item, 0, len(args))
		for i, arg := range args {
			items = append(items, batch.Item{Line: i + 1, Hex: strings.TrimSpace(arg)})
		}
		return items, nil
	case a.file != "":
		return readFile(a.file)
	default:
		return readItems(cmd.InOrStdin(), "stdin")
	}
}

func readFile(path string) ([]batch.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return readItems(f, path)
}

func readItems(r io.Reader, name string) ([]batch.Item, error) {
	items, err := batch.ReadItems(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: no transmissions", name)
	}
	return items, nil
}

func (a *app) run(cmd *cobra.Command, items []batch.Item, mode report.Mode) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := batch.Run(ctx, items, batch.Options{
		Workers:  a.cfg.Batch.Workers,
		FailFast: a.cfg.Batch.FailFast,
		Mode:     mode,
		Limits:   a.cfg.Limits,
	})
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), a.cfg.Format, results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	for _, r := range results {
		if r.Err != nil {
			return ErrFailedItems
		}
	}
	return nil
}
