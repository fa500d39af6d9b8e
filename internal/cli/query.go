package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	liptable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/pkg/session"
	"github.com/tablekit/tablekit/pkg/table"
)

// queryCommand creates the one-shot query command.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		configFile  string
		search      string
		filterFlags []string
		sortKey     string
		sortDir     string
		page        int
		size        int
		asJSON      bool
		resume      bool
	)

	cmd := &cobra.Command{
		Use:   "query [dataset]",
		Short: "Run one filter/sort/paginate pass over a dataset",
		Long: `Query loads a dataset (CSV or JSON file, or a MongoDB collection via
mongodb://host/db/collection), applies the filter, sort and paginate
pipeline once, and prints the resulting page.

With --resume the previous invocation's dataset and query state are
reloaded; flags given alongside it refine the saved query.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}
			if size == 0 {
				size = cfg.PageSize
			}

			filters, ok := parseFilterFlags(filterFlags)
			if !ok {
				return fmt.Errorf("filters must have the form column=value")
			}

			var dataset string
			if len(args) == 1 {
				dataset = args[0]
			}
			var saved *session.Session
			if resume {
				if saved, err = lastSession(ctx); err != nil {
					return err
				}
				if dataset == "" {
					dataset = saved.DatasetHash
				}
			} else if dataset == "" {
				return fmt.Errorf("dataset argument required (or --resume)")
			}

			prog := newProgress(c.Logger)
			src, cleanup, err := loadSource(ctx, dataset, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			cols, err := src.Columns(ctx)
			if err != nil {
				return err
			}
			rows, err := src.Rows(ctx)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d rows from %s", len(rows), src.Name()))

			query := table.Query{
				Search:  search,
				Filters: filters,
				SortKey: sortKey,
				SortDir: table.ParseDirection(sortDir),
				Page:    page,
				Size:    size,
			}
			if saved != nil {
				query = overlaySavedQuery(saved.Query, query, cmd.Flags().Changed)
			}
			result := query.Apply(ctx, rows, cols, nil)
			c.Logger.Debug("pipeline complete",
				"filter", result.Stats.FilterTime,
				"sort", result.Stats.SortTime,
			)

			query.Page = result.Page
			saveLastSession(ctx, dataset, query)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Println(renderResult(cols, result))
			printStats(len(result.Rows), result.Filtered, result.Total, false)
			printDetail("page %d of %d", result.Page, result.TotalPages)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&search, "search", "q", "", "global search text")
	cmd.Flags().StringArrayVarP(&filterFlags, "filter", "f", nil, "column filter (column=value, repeatable)")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "sort column key")
	cmd.Flags().StringVarP(&sortDir, "dir", "d", "", "sort direction (asc|desc)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number (1-based)")
	cmd.Flags().IntVarP(&size, "size", "n", 0, "page size")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&resume, "resume", "r", false, "resume the previous dataset and query")

	return cmd
}

// renderResult renders one result page as a bordered terminal table.
func renderResult(cols []table.Column, result table.Result) string {
	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.DisplayLabel()
	}

	rows := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		cells := make([]string, len(cols))
		for j, col := range cols {
			raw, ok := row[col.Key]
			if !ok || raw == nil {
				cells[j] = ""
				continue
			}
			cells[j] = table.NewValue(raw, col.Type).Formatted
		}
		rows[i] = cells
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := liptable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleValue
		})

	return t.Render()
}
