// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package producer

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/sideline/internal/models"
)

//go:embed data/default_game.csv
var defaultGame []byte

// ErrEmptyDataset is returned for a dataset without rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// Dataset is an ordered list of plays.
type Dataset struct {
	rows []models.TelemetryRow
}

// LoadDataset reads a CSV play-by-play file. An empty path loads the
// built-in game.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return ParseDataset(bytes.NewReader(defaultGame))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return ParseDataset(f)
}

// ParseDataset reads CSV with a header row of column names. Unknown
// columns are ignored and missing columns are left empty.
func ParseDataset(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	var rows []models.TelemetryRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset line %d: %w", line, err)
		}

		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				values[col] = record[i]
			}
		}
		rows = append(rows, models.RowFromMap(values))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return &Dataset{rows: rows}, nil
}

// NewDataset wraps rows.
func NewDataset(rows []models.TelemetryRow) *Dataset {
	return &Dataset{rows: rows}
}

// Len returns the number of plays.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns play i.
func (d *Dataset) Row(i int) models.TelemetryRow {
	return d.rows[i]
}
