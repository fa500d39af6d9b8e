package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	liptable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/pkg/session"
	"github.com/tablekit/tablekit/pkg/table"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		configFile string
		size       int
		resume     bool
	)

	cmd := &cobra.Command{
		Use:   "browse [dataset]",
		Short: "Browse a dataset interactively",
		Long: `Browse opens a dataset (CSV or JSON file, or a MongoDB collection) in an
interactive terminal table. Type / to search, use the arrow keys to move
between columns and pages, and press s to sort by the selected column.

With --resume the previous session's dataset and query state are
restored; the state at quit is saved for the next invocation.`,
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

			tbl, err := table.New(rows, cols, size)
			if err != nil {
				return err
			}
			c.Logger.Debug("dataset loaded", "name", src.Name(), "rows", len(rows), "columns", len(cols))

			if saved != nil {
				q := saved.Query
				if cmd.Flags().Changed("size") {
					q.Size = size
				}
				applyQueryState(tbl, q)
			}

			model := newBrowseModel(src.Name(), tbl)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}

			saveLastSession(ctx, dataset, table.Query{
				Search:  tbl.Search(),
				Filters: tbl.Filters(),
				SortKey: tbl.SortKey(),
				SortDir: tbl.SortDirection(),
				Page:    tbl.CurrentPage(),
				Size:    tbl.PageSize(),
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().IntVarP(&size, "size", "n", 0, "page size")
	cmd.Flags().BoolVarP(&resume, "resume", "r", false, "resume the previous dataset and query")

	return cmd
}

// =============================================================================
// browseModel - Interactive table browser
// =============================================================================

// browseModel is the bubbletea model wrapping a table pipeline. Every key
// press mutates the pipeline state and the next View renders the derived
// page, so the display always reflects the current filter, sort and page.
type browseModel struct {
	name string
	tbl  *table.Table

	cursor    int // selected column index
	searching bool
	search    string // uncommitted input while searching
	width     int
}

func newBrowseModel(name string, tbl *table.Table) browseModel {
	return browseModel{name: name, tbl: tbl}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// updateSearch handles keys while the search prompt is open. The search
// is applied live on every keystroke.
func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.search = ""
		m.tbl.SetSearch("")
	case "enter":
		m.searching = false
	case "backspace":
		if len(m.search) > 0 {
			runes := []rune(m.search)
			m.search = string(runes[:len(runes)-1])
			m.tbl.SetSearch(m.search)
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.search += string(msg.Runes)
			m.tbl.SetSearch(m.search)
		}
	}
	return m, nil
}

func (m browseModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.tbl.Columns()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search = m.tbl.Search()
	case "left", "h":
		m.tbl.PrevPage()
	case "right", "l":
		m.tbl.NextPage()
	case "g", "home":
		m.tbl.FirstPage()
	case "G", "end":
		m.tbl.LastPage()
	case "tab":
		if len(cols) > 0 {
			m.cursor = (m.cursor + 1) % len(cols)
		}
	case "shift+tab":
		if len(cols) > 0 {
			m.cursor = (m.cursor - 1 + len(cols)) % len(cols)
		}
	case "s", "enter":
		if m.cursor < len(cols) {
			m.tbl.SetSort(cols[m.cursor].Key)
		}
	case "S":
		m.tbl.ClearSort()
	case "c":
		m.tbl.ClearAllFilters()
		m.search = ""
	case "+", "=":
		m.tbl.SetPageSize(m.tbl.PageSize() + 5)
	case "-":
		m.tbl.SetPageSize(m.tbl.PageSize() - 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	title := m.name
	if title == "" {
		title = "dataset"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	if m.searching {
		b.WriteString(StyleHighlight.Render("/" + m.search + "▌"))
		b.WriteString(StyleDim.Render("  enter apply  esc clear"))
	} else {
		b.WriteString(StyleDim.Render("/ search  tab column  s sort  S unsort  c clear  ←/→ page  q quit"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderPage())
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	return b.String()
}

// renderPage renders the current page with the selected column and sort
// direction marked in the header.
func (m browseModel) renderPage() string {
	cols := m.tbl.Columns()

	headers := make([]string, len(cols))
	for i, col := range cols {
		header := col.DisplayLabel()
		if m.tbl.IsSortedBy(col.Key) {
			switch m.tbl.SortDirection() {
			case table.Ascending:
				header += " ▲"
			case table.Descending:
				header += " ▼"
			}
		}
		if i == m.cursor {
			header = "▸ " + header
		}
		headers[i] = header
	}

	rows := [][]string{}
	for _, row := range m.tbl.Page() {
		cells := make([]string, len(cols))
		for j, col := range cols {
			cells[j] = m.tbl.CellValue(row, col.Key).Formatted
		}
		rows = append(rows, cells)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	selectedHeaderStyle := lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

	t := liptable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				if col == m.cursor {
					return selectedHeaderStyle
				}
				return headerStyle
			}
			if col == m.cursor {
				return StyleHighlight
			}
			return StyleValue
		})

	return t.Render()
}

// renderStatus renders the footer line with paging and filter state.
func (m browseModel) renderStatus() string {
	start, end := m.tbl.Window()
	parts := []string{
		fmt.Sprintf("page %d/%d", m.tbl.CurrentPage(), m.tbl.TotalPages()),
	}
	if m.tbl.FilteredLen() > 0 {
		parts = append(parts, fmt.Sprintf("rows %d-%d of %d", start+1, end, m.tbl.FilteredLen()))
	} else {
		parts = append(parts, "no matching rows")
	}
	if m.tbl.FilteredLen() != m.tbl.TotalLen() {
		parts = append(parts, fmt.Sprintf("filtered from %d", m.tbl.TotalLen()))
	}
	if q := m.tbl.Search(); q != "" {
		parts = append(parts, fmt.Sprintf("search %q", q))
	}
	return StyleDim.Render("  " + strings.Join(parts, " · "))
}
