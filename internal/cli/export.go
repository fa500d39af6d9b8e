package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/pkg/source"
)

// exportCommand creates the export command, which converts any dataset
// source into the canonical JSON format accepted by the HTTP API.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		configFile string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export <dataset>",
		Short: "Export a dataset as a JSON document",
		Long: `Export loads a dataset (CSV or JSON file, or a MongoDB collection) and
writes it as a JSON document with column metadata. The output can be
re-imported or uploaded to a tablekit server with POST /api/tables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}
			if output == "" {
				output = deriveOutputPath(args[0])
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s", args[0]))
			spinner.Start()

			src, cleanup, err := loadSource(ctx, args[0], cfg)
			if err != nil {
				spinner.StopWithError(err.Error())
				return err
			}
			defer cleanup()

			if err := source.ExportJSON(ctx, src, output); err != nil {
				spinner.StopWithError(err.Error())
				return err
			}
			rows, err := src.Rows(ctx)
			if err != nil {
				spinner.StopWithError(err.Error())
				return err
			}

			spinner.StopWithSuccess(fmt.Sprintf("Exported %d rows", len(rows)))
			printFile(output)
			printNextStep("serve it", "tablekit serve")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <dataset>.json)")

	return cmd
}

// deriveOutputPath builds a default output filename from the input.
func deriveOutputPath(arg string) string {
	if strings.HasPrefix(arg, "mongodb://") || strings.HasPrefix(arg, "mongodb+srv://") {
		trimmed := strings.TrimSuffix(arg, "/")
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			return trimmed[idx+1:] + ".json"
		}
		return "dataset.json"
	}
	if idx := strings.LastIndex(arg, "."); idx > 0 {
		return arg[:idx] + ".json"
	}
	return arg + ".json"
}
