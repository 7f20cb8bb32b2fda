package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/namedisambig/clustereval/internal/config"
	"github.com/namedisambig/clustereval/internal/evaluation"
	"github.com/namedisambig/clustereval/internal/loader"
	apperrors "github.com/namedisambig/clustereval/internal/pkg/errors"
	"github.com/namedisambig/clustereval/internal/pkg/logger"
	"github.com/namedisambig/clustereval/internal/report"
)

// env is the per-invocation configuration shared by subcommands.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("format")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if format != "" {
		cfg.Output.Format = format
	}
	applyOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if cfg.IsDebug() {
		log.Debug("configuration loaded",
			"config", path,
			"workers", cfg.Eval.Workers,
			"strict", cfg.Eval.Strict,
			"min_items", cfg.Eval.MinItems,
			"max_groups", cfg.Inspect.MaxGroups,
			"output", cfg.Output.Format,
		)
	}
	return &env{cfg: cfg, log: log}, nil
}

// applyOverrides copies the subcommand flags the user set onto cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Eval.Workers, _ = flags.GetInt("workers")
	}
	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		cfg.Eval.Strict, _ = flags.GetBool("strict")
	}
	if flags.Lookup("max-groups") != nil && flags.Changed("max-groups") {
		cfg.Inspect.MaxGroups, _ = flags.GetInt("max-groups")
	}
}

func sources(cmd *cobra.Command) (loader.Source, loader.Source, error) {
	predPath, _ := cmd.Flags().GetString("predict")
	truthPath, _ := cmd.Flags().GetString("truth")
	if predPath == "" || truthPath == "" {
		return loader.Source{}, loader.Source{}, apperrors.ValidationError("both --predict and --truth are required")
	}
	return loader.FromPath(predPath), loader.FromPath(truthPath), nil
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("predict", "p", "", "prediction file (JSON or YAML)")
	cmd.Flags().StringP("truth", "t", "", "ground truth file (JSON or YAML)")
	_ = cmd.MarkFlagRequired("predict")
	_ = cmd.MarkFlagRequired("truth")
}

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute the mean pairwise F1 of a prediction",
		Long: `Score every group present in both files and print the average pairwise F1.

Prediction format:    {"name": [["item", ...], ...], ...}
Ground truth formats: {"name": {"cluster": ["item", ...], ...}, ...}
                      {"name": [["item", ...] | "item", ...], ...}

Groups with an unknown format or without common items are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			predSrc, truthSrc, err := sources(cmd)
			if err != nil {
				return err
			}

			opts := evaluation.Options{
				Workers:  e.cfg.Eval.Workers,
				Strict:   e.cfg.Eval.Strict,
				MinItems: e.cfg.Eval.MinItems,
			}

			pred, truth, err := evaluation.LoadSources(predSrc, truthSrc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if withInspect, _ := cmd.Flags().GetBool("inspect"); withInspect {
				r := evaluation.Inspect(pred, truth, e.cfg.Inspect.MaxGroups, e.cfg.Inspect.SampleSize)
				if err := report.WriteInspect(out, r, e.cfg.Output.Format); err != nil {
					return err
				}
				if e.cfg.Output.Format == report.FormatText {
					fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 50))
				}
			}

			summary, err := evaluation.NewEvaluator(opts, e.log).Run(cmd.Context(), pred, truth)
			if err != nil {
				return err
			}

			details, _ := cmd.Flags().GetBool("details")
			return report.WriteSummary(out, summary, e.cfg.Output.Format, details)
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().Bool("details", false, "list per-group scores and skipped groups")
	cmd.Flags().Bool("inspect", false, "print input format diagnostics first")
	cmd.Flags().Int("workers", 0, "groups scored in parallel (overrides config)")
	cmd.Flags().Bool("strict", false, "skip groups whose items appear in several clusters")

	return cmd
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the detected format of a sample of groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			predSrc, truthSrc, err := sources(cmd)
			if err != nil {
				return err
			}

			pred, truth, err := evaluation.LoadSources(predSrc, truthSrc)
			if err != nil {
				return err
			}
			r := evaluation.Inspect(pred, truth, e.cfg.Inspect.MaxGroups, e.cfg.Inspect.SampleSize)
			return report.WriteInspect(cmd.OutOrStdout(), r, e.cfg.Output.Format)
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().Int("max-groups", 0, "number of common groups to describe (overrides config)")

	return cmd
}
