package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// renderTable writes rows as a borderless, tab-padded table
func renderTable(w io.Writer, headers []string, rows [][]string, emptyMessage string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, emptyMessage)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()
	return nil
}
