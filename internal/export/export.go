// Package export renders the player table as tabular play-time data. It is
// a pure read over a point-in-time snapshot and never touches engine state.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/coachbox/courtclock/internal/clockfmt"
	"github.com/coachbox/courtclock/internal/models"
)

// PeriodLabels returns the column labels for the format's periods, e.g.
// Q1..Q4 or H1..H2
func PeriodLabels(format models.GameFormat) []string {
	prefix := "Q"
	if format == models.FormatHalves {
		prefix = "H"
	}

	labels := make([]string, format.Periods())
	for i := range labels {
		labels[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return labels
}

// Rows builds the export table: a header row followed by one row per
// player, times rendered mm:ss
func Rows(players []*models.Player, periodLabels []string) [][]string {
	header := make([]string, 0, len(periodLabels)+2)
	header = append(header, "Player", "Total")
	header = append(header, periodLabels...)

	rows := make([][]string, 0, len(players)+1)
	rows = append(rows, header)

	for _, p := range players {
		row := make([]string, 0, len(periodLabels)+2)
		row = append(row, p.Name, clockfmt.MMSS(p.TotalMs))
		for i := range periodLabels {
			var ms int64
			if i < len(p.PeriodMs) {
				ms = p.PeriodMs[i]
			}
			row = append(row, clockfmt.MMSS(ms))
		}
		rows = append(rows, row)
	}

	return rows
}

// WriteCSV writes the export table as CSV
func WriteCSV(w io.Writer, players []*models.Player, periodLabels []string) error {
	cw := csv.NewWriter(w)

	if err := cw.WriteAll(Rows(players, periodLabels)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}
