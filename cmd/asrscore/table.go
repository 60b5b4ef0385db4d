package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// reportTable accumulates rows for terminal report output. Numeric columns
// are right-aligned so counts and rates line up under their left-aligned
// headers.
type reportTable struct {
	tw      table.Writer
	columns []reportColumn
}

type reportColumn struct {
	name    string
	numeric bool
}

func col(name string) reportColumn    { return reportColumn{name: name} }
func numCol(name string) reportColumn { return reportColumn{name: name, numeric: true} }

func newReportTable(columns ...reportColumn) *reportTable {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, column := range columns {
		header[i] = column.name
		align := text.AlignLeft
		if column.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	return &reportTable{tw: tw, columns: columns}
}

// addRow appends one row; missing trailing cells render empty.
func (t *reportTable) addRow(cells ...string) {
	row := make(table.Row, len(t.columns))
	for i := range t.columns {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	t.tw.AppendRow(row)
}

func (t *reportTable) render() string {
	return t.tw.Render()
}

// Cell formatters shared by the report tables.

func fmtSeconds(value float64) string {
	return fmt.Sprintf("%.3fs", value)
}

func fmtRate(value float64) string {
	return fmt.Sprintf("%.4f", value)
}

func fmtCount(n int) string {
	return fmt.Sprintf("%d", n)
}

func fmtTimestamp(ts time.Time) string {
	return ts.Local().Format(time.DateTime)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
