package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DRAGVAN/siteVisitProject/internal/factories"
	"github.com/DRAGVAN/siteVisitProject/internal/output"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fabricate a sample site table",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		cities, _ := cmd.Flags().GetInt("cities")
		radius, _ := cmd.Flags().GetFloat64("urban-radius")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")
		delimiter, _ := cmd.Flags().GetString("delimiter")

		if len(delimiter) != 1 {
			return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}

		sites := factories.NewSiteFactory(seed).CreateSites(count, cities, radius)
		if err := output.WriteFile(out, sites, rune(delimiter[0])); err != nil {
			return err
		}
		fmt.Printf("wrote %d sites across %d cities to %s\n", count, cities, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int("count", 50, "Number of sites to generate")
	generateCmd.Flags().Int("cities", 5, "Number of cities to spread sites over")
	generateCmd.Flags().Float64("urban-radius", 10.0, "City radius in kilometers")
	generateCmd.Flags().Int64("seed", 42, "Random seed")
	generateCmd.Flags().String("out", "sites.csv", "Output path for the sample table")
	generateCmd.Flags().String("delimiter", ",", "Delimiter for the sample table")
}
