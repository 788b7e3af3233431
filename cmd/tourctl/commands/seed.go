package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tunitour/internal/models/request_models"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Create or update cities from a YAML file",
	Long: `Load cities from a YAML document of the form:

  cities:
    - name: Sidi Bou Said
      region: Tunis
      description: Blue and white village above the gulf.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seeds, err := readCitySeed(args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			n, err := e.cities.SeedCities(ctx, seeds)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]int{"seeded": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d cities\n", n)
			return nil
		})
	},
}

func readCitySeed(path string) ([]request_models.CreateCityRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc request_models.CitySeedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(doc.Cities) == 0 {
		return nil, fmt.Errorf("seed file %s has no cities", path)
	}
	return doc.Cities, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
