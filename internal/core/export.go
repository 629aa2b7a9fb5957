package core

// export.go renders the fleet health table as comma-delimited text:
// a header row, then one row per vehicle with the remaining-life
// percentage and the raw service fields of every component.
//
// Known limitation, kept for compatibility with the downstream
// spreadsheet tooling: cells are written as-is with no quote escaping,
// so a component model containing a comma corrupts its row. Commas in
// cells are stripped rather than escaped.

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportFleetHealth writes the delimited fleet table for the named
// preset to w.
func (s *Service) ExportFleetHealth(ctx context.Context, presetName string, w io.Writer) error {
	reports, err := s.FleetHealth(ctx, presetName)
	if err != nil {
		return err
	}

	var components []ComponentHealth
	if len(reports) > 0 {
		components = reports[0].Components
	}

	header := []string{"vehiculo", "placas", "km_actual", "hr_actual"}
	for _, comp := range components {
		header = append(header,
			comp.Label+" %",
			comp.Label+" km",
			comp.Label+" fecha",
			comp.Label+" modelo",
		)
	}
	if err := writeRow(w, header); err != nil {
		return err
	}

	for _, report := range reports {
		row := []string{
			report.Vehicle.NumeroEconomico,
			report.Vehicle.Placas,
			formatCounter(report.CurrentKm),
			formatCounter(report.CurrentHours),
		}
		for _, comp := range report.Components {
			row = append(row,
				formatPercent(comp.Percent),
				formatCounter(comp.LastServiceKm),
				comp.LastServiceDate,
				comp.Model,
			)
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string) error {
	for i, cell := range cells {
		cells[i] = strings.ReplaceAll(cell, ",", " ")
	}
	_, err := fmt.Fprintln(w, strings.Join(cells, ","))
	return err
}

func formatPercent(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 1, 64)
}

func formatCounter(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// ExportFileName is the download name for the fleet export.
func ExportFileName(presetName string) string {
	if presetName == "" {
		presetName = "standard"
	}
	return "flotilla_salud_" + presetName + ".csv"
}
