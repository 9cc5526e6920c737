package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
	tableHeaderStyle = StyleSummary.Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableKeyStyle    = StyleNoun.Padding(0, 1)
)

// Table is a listing with a header row. The first column holds the
// identifying noun (template name, config key) and is styled as one.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row adds a row to the table. Empty cells render as "-".
func (t *Table) Row(cells ...string) *Table {
	row := make([]string, len(cells))
	for i, c := range cells {
		if c == "" {
			c = "-"
		}
		row[i] = c
	}
	t.rows = append(t.rows, row)
	return t
}

// String renders the table with a rounded dim border and no row separators.
func (t *Table) String() string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		BorderRow(false).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return tableKeyStyle
			default:
				return tableCellStyle
			}
		}).
		String()
}
