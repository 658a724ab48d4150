package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"airquality-server/internal/app"
	"airquality-server/internal/modules/airquality/service"
	"airquality-server/internal/modules/airquality/types"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newReportCmd(c *cli) *cobra.Command {
	var (
		page   string
		format string
		series bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print one dashboard view without starting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, ok := types.ParsePage(page)
			if !ok {
				return fmt.Errorf("unknown page %q (allowed: home, pollutants, weather, trends)", page)
			}
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (allowed: text, json, yaml)", format)
			}

			view, err := app.Report(cmd.Context(), c.cfg, p)
			if err != nil {
				return err
			}
			if !series {
				view = view.WithoutSeries()
			}
			return writeReport(cmd.OutOrStdout(), view, format)
		},
	}
	cmd.Flags().StringVar(&page, "page", string(types.PageHome), "view to compute: home, pollutants, weather or trends")
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&series, "series", false, "include the grouped time series of the trends view")
	return cmd
}

func writeReport(w io.Writer, view *service.RenderedView, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		return writeText(w, view)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, view *service.RenderedView) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString(view.Title + "\n")
	b.WriteString(strings.Repeat("=", len(view.Title)) + "\n")

	if o := view.Overview; o != nil {
		b.WriteString(p.Sprintf("Total Records: %d\n", o.Records))
		b.WriteString(p.Sprintf("Monitoring Stations: %d\n", o.Stations))
		if o.HasRange {
			fmt.Fprintf(&b, "Date Range: %s to %s\n", o.Start.Format("2006-01-02"), o.End.Format("2006-01-02"))
		} else {
			b.WriteString("Date Range: n/a\n")
		}
	}

	if r := view.Ranking; r != nil {
		b.WriteString("\n")
		for _, m := range r.Means {
			if !m.Valid {
				fmt.Fprintf(&b, "%-6s n/a\n", m.Pollutant)
				continue
			}
			b.WriteString(p.Sprintf("%-6s %.2f\n", m.Pollutant, m.Mean.Float()))
		}
	}

	if wi := view.Weather; wi != nil && wi.Strongest != nil {
		fmt.Fprintf(&b, "\nStrongest correlation: %s / %s (%.2f)\n",
			wi.Strongest.Factor, wi.Strongest.Pollutant, wi.Strongest.Correlation.Float())
	}

	if len(view.TrendMessages) > 0 {
		b.WriteString("\n")
		for _, m := range view.TrendMessages {
			b.WriteString(m.Message + "\n")
		}
	}

	if view.Insufficient {
		b.WriteString("\nNot enough data to describe this view.\n")
	}

	if n := view.Narrative; n != nil {
		if n.Highlight != "" {
			b.WriteString("\n" + n.Highlight + "\n")
		}
		if len(n.Conclusion) > 0 {
			b.WriteString("\nConclusion:\n")
			for _, line := range n.Conclusion {
				b.WriteString("- " + line + "\n")
			}
		}
		if len(n.StaticNotes) > 0 {
			b.WriteString("\nNotes:\n")
			for _, line := range n.StaticNotes {
				b.WriteString("- " + line + "\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
