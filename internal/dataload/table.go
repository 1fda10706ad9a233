package dataload

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"fuelmx/internal/errors"
)

// readTable reads a tabular file into rows of string cells. CSV files are
// read with encoding/csv; .xlsx exports are read with excelize (first
// sheet). A missing file is a fatal storage error, distinct from an empty
// but valid table.
func readTable(path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewStorageError("input file not found", err).WithContext("path", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open CSV file", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, cell access is guarded

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV file", err).WithContext("path", path)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open XLSX file", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("XLSX file has no sheets", nil).WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read XLSX sheet", err).WithContext("path", path)
	}
	return rows, nil
}

// columnMap maps normalized header names to column indexes from the first
// row of a table. Header matching is exact after trimming, case-insensitive.
type columnMap map[string]int

func mapColumns(header []string) columnMap {
	cm := make(columnMap, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, exists := cm[key]; !exists {
			cm[key] = i
		}
	}
	return cm
}

// require verifies every named column exists, returning a parsing error
// naming the first missing one.
func (cm columnMap) require(names ...string) error {
	for _, name := range names {
		if _, ok := cm[strings.ToLower(name)]; !ok {
			return errors.NewParsingError("required column missing", nil).WithContext("column", name)
		}
	}
	return nil
}

// cell returns the trimmed cell under the named column, or "" when the row
// is too short or the column is absent.
func (cm columnMap) cell(row []string, name string) string {
	idx, ok := cm[strings.ToLower(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
