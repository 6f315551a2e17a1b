// Package importer reads player stat rows from Excel score sheets.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

// ErrNoNameColumn is returned when the header row has no player name column.
var ErrNoNameColumn = errors.New("no name column in header row")

// nameHeaders are accepted spellings of the player name header.
var nameHeaders = []string{match.NameLabel, "name", "選手", "選手名"}

// Result is the content of one imported sheet.
type Result struct {
	Sheet string
	Rows  []match.RawStat
	// Ignored lists header cells that matched no counter.
	Ignored []string
}

// ReadExcel imports the first sheet of the workbook at path.
func ReadExcel(path string) (Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(f, "")
}

// ReadExcelFrom imports sheet (or the first sheet when empty) from an xlsx stream.
func ReadExcelFrom(r io.Reader, sheet string) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) (Result, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Result{}, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	res, err := parseRows(rows)
	if err != nil {
		return Result{}, fmt.Errorf("sheet %s: %w", sheet, err)
	}
	res.Sheet = sheet
	slog.Info("workbook imported", "sheet", sheet, "rows", len(res.Rows), "ignoredColumns", len(res.Ignored))
	return res, nil
}

// parseRows maps the first non-blank row as the header and every following
// non-blank row to a RawStat. Cell text is left for match.Normalize to validate.
func parseRows(rows [][]string) (Result, error) {
	headerAt := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return Result{}, ErrNoNameColumn
	}

	var res Result
	nameCol := -1
	columns := make(map[int]match.CounterID)
	for col, cell := range rows[headerAt] {
		h := strings.TrimSpace(cell)
		if h == "" {
			continue
		}
		if nameCol < 0 && isNameHeader(h) {
			nameCol = col
			continue
		}
		if id, ok := counterForHeader(h); ok {
			columns[col] = id
			continue
		}
		res.Ignored = append(res.Ignored, h)
	}
	if nameCol < 0 {
		return Result{}, ErrNoNameColumn
	}

	for _, row := range rows[headerAt+1:] {
		if blankRow(row) {
			continue
		}
		raw := match.RawStat{Name: cell(row, nameCol), Counters: make(map[match.CounterID]string, len(columns))}
		for col, id := range columns {
			raw.Counters[id] = cell(row, col)
		}
		res.Rows = append(res.Rows, raw)
	}
	return res, nil
}

func isNameHeader(h string) bool {
	for _, n := range nameHeaders {
		if strings.EqualFold(h, n) {
			return true
		}
	}
	return false
}

// counterForHeader accepts either the sheet label or the JSON field name.
func counterForHeader(h string) (match.CounterID, bool) {
	for _, c := range match.Counters {
		if h == c.Label || strings.EqualFold(h, string(c.ID)) {
			return c.ID, true
		}
	}
	return "", false
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
