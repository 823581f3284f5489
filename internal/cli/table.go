package cli

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const tablePadding = 2

// writeTable writes left-aligned columns sized to the widest visible cell.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	colCount := len(headers)
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	measure := func(row []string) {
		for idx, cell := range row {
			widths[idx] = max(widths[idx], cellWidth(cell))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	writer := bufio.NewWriter(out)
	writeRow := func(row []string) {
		for idx := 0; idx < colCount; idx++ {
			cell := ""
			if idx < len(row) {
				cell = row[idx]
			}
			_, _ = writer.WriteString(cell)
			if idx < colCount-1 {
				padding := max(widths[idx]-cellWidth(cell), 0)
				_, _ = writer.WriteString(strings.Repeat(" ", padding+tablePadding))
			}
		}
		_ = writer.WriteByte('\n')
	}

	if len(headers) > 0 {
		writeRow(headers)
	}
	for _, row := range rows {
		writeRow(row)
	}
	// bufio.Writer keeps the first error; Flush reports it.
	return writer.Flush()
}

func cellWidth(cell string) int {
	return runewidth.StringWidth(ansi.Strip(cell))
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatResult(v *uint64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatUint(*v, 10)
}
