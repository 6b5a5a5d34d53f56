// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package score lays the voice lines and the shared rhythm out as an
// etable.Table, one row per note, for printing and CSV export.
package score

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/pkg/errors"

	"github.com/emer/phrygian/domain"
	"github.com/emer/phrygian/rhythm"
)

// Column names besides the per-line labels
const (
	ColNote  = "Note"
	ColStart = "Start"
	ColDur   = "Duration"
)

// Table builds a table with Note, Start, Duration and one column per line.
// Lines and rhythm are truncated to the shortest of them.
func Table(lines [][]float64, labels []string, durs []float64) (*etable.Table, error) {
	if len(lines) != len(labels) {
		return nil, domain.Errorf(domain.LengthMismatch, "score.Table", "%d lines, %d labels", len(lines), len(labels))
	}
	n := len(durs)
	for _, l := range lines {
		n = min(n, len(l))
	}

	dt := &etable.Table{}
	dt.SetMetaData("name", "Score")
	dt.SetMetaData("desc", "voice frequencies in Hz and durations in seconds, one row per note")
	dt.SetMetaData("precision", strconv.Itoa(2))

	sch := etable.Schema{
		{ColNote, etensor.INT64, nil, nil},
		{ColStart, etensor.FLOAT64, nil, nil},
		{ColDur, etensor.FLOAT64, nil, nil},
	}
	for _, lb := range labels {
		sch = append(sch, etable.Column{Name: lb, Type: etensor.FLOAT64})
	}
	dt.SetFromSchema(sch, n)

	onsets := rhythm.Onsets(durs[:n])
	for row := 0; row < n; row++ {
		dt.SetCellFloat(ColNote, row, float64(row+1))
		dt.SetCellFloat(ColStart, row, onsets[row])
		dt.SetCellFloat(ColDur, row, durs[row])
		for i, lb := range labels {
			dt.SetCellFloat(lb, row, lines[i][row])
		}
	}
	return dt, nil
}

// Print writes the table as one line per note, followed by the note count
func Print(w io.Writer, dt *etable.Table, labels []string) {
	sep := strings.Repeat("-", 37)
	fmt.Fprintln(w, "Generated Melody and Harmonies:")
	fmt.Fprintln(w, sep)
	for row := 0; row < dt.Rows; row++ {
		parts := make([]string, 0, len(labels)+1)
		for _, lb := range labels {
			parts = append(parts, fmt.Sprintf("%s = %.2f Hz", lb, dt.CellFloat(lb, row)))
		}
		parts = append(parts, fmt.Sprintf("Duration = %.2f s", dt.CellFloat(ColDur, row)))
		fmt.Fprintf(w, "Note %d: %s\n", row+1, strings.Join(parts, ", "))
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Total Notes: %d\n", dt.Rows)
}

// WriteCSV saves the table as comma separated values with a header row
func WriteCSV(dt *etable.Table, fn string) error {
	f, err := os.Create(fn)
	if err != nil {
		return errors.Wrapf(err, "score: creating %s", fn)
	}
	defer f.Close()
	return errors.Wrapf(dt.WriteCSV(f, etable.Comma, true), "score: writing %s", fn)
}
