package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/xnpak/internal/app"
	"github.com/quantmind-br/xnpak/internal/importer"
	"github.com/quantmind-br/xnpak/internal/manifest"
)

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [manifest]",
		Short: "Show the assets a build would produce",
		Long:  "Validates the manifest and prints each asset's source, importer and output path without building anything.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, m, err := c.setup(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPlan(m, app.Plan(m)))
			return nil
		},
	}
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderPlan formats a build plan relative to the manifest root
func renderPlan(m *manifest.Manifest, plan []app.PlannedAsset) string {
	headers := []string{"#", "Asset", "Type", "Source", "Output", "Produces"}
	rows := make([][]string, 0, len(plan))
	for _, p := range plan {
		typeName := p.Type.String()
		if p.Coerced {
			typeName += " (" + m.Assets[p.Index-1].TypeName + ")"
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Index),
			p.Name,
			typeName,
			relativeTo(m.RootDirectory, p.Source),
			relativeTo(m.RootDirectory, p.Output),
			importer.Describe(p.Type),
		})
	}

	caption := fmt.Sprintf("%d assets -> %s", len(plan), relativeTo(m.RootDirectory, m.ContentDir()))
	if m.Compress {
		caption += " (compression requested, not supported)"
	}
	return renderTable(headers, rows, []columnAlignment{alignRight}) + "\n" + caption
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
