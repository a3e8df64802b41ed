package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
	"github.com/DRAGVAN/siteVisitProject/internal/scheduler"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sitevisit",
	Short: "Plans multi-day field-visit schedules for distributed sites",
	Long: `sitevisit reads a delimited table of field sites, pairs nearby sites so
one team can cover several in a day, assigns every site a team and a visit
date, writes the enriched table back out and renders a route map.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if cfg.InputFile == "" {
			return fmt.Errorf("--input is required")
		}
		if cfg.OutputFile == "" {
			return fmt.Errorf("--output is required")
		}
		if _, err := os.Stat(cfg.InputFile); err != nil {
			return fmt.Errorf("input table not readable: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		pipeline, err := scheduler.NewPipeline(ctx, cfg)
		if err != nil {
			return err
		}
		return pipeline.Run(ctx)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")

	rootCmd.Flags().String("input", "", "Input site table (CSV, delimiter auto-detected)")
	rootCmd.Flags().String("output", "", "Output table path")
	rootCmd.Flags().String("map", "", "Map artifact path (HTML); empty disables the map")
	rootCmd.Flags().String("start-date", time.Now().Format(models.DateLayout), "First schedulable date (YYYY-MM-DD)")
	rootCmd.Flags().Float64("max-pair-distance", 5.0, "Maximum pairing distance in kilometers")
	rootCmd.Flags().Int("max-group-size", 2, "Maximum sites one team visits per day")
	rootCmd.Flags().Bool("prefer-hard-access", true, "Prefer pairing hard-to-reach sites on equal distance")
	rootCmd.Flags().BoolP("verbose", "v", false, "Verbose logging and progress output")

	bindings := map[string]string{
		"input_file":         "input",
		"output_file":        "output",
		"map_file":           "map",
		"start_date":         "start-date",
		"max_pair_distance":  "max-pair-distance",
		"max_group_size":     "max-group-size",
		"prefer_hard_access": "prefer-hard-access",
		"verbose":            "verbose",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			cobra.CheckErr(err)
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
