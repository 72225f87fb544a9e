package csvsearch

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// nullDisplay is how NULL appears in on-screen tables.
const nullDisplay = "NULL"

// RenderTable writes rs to w as an aligned, bordered table.
func RenderTable(w io.Writer, rs *ResultSet) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(rs.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range rs.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = formatValue(v, nullDisplay)
		}
		table.Append(line)
	}
	table.Render()
}
