package report

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet written by WriteWorkbook.
const SheetName = "Results"

const (
	nameColumn   = "PLAYER NAME"
	injuryColumn = "Injury Week"
)

// ReadSubjectsFile opens an input workbook and reads its subjects.
func ReadSubjectsFile(path string, logger *slog.Logger) ([]Subject, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()
	return readSubjects(f, logger)
}

// ReadSubjects reads subjects from the first sheet of a workbook. The header
// row must carry the name and injury-week columns; rows missing either value
// are skipped.
func ReadSubjects(r io.Reader, logger *slog.Logger) ([]Subject, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input workbook: %w", err)
	}
	defer f.Close()
	return readSubjects(f, logger)
}

func readSubjects(f *excelize.File, logger *slog.Logger) ([]Subject, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("input workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	nameIdx, injuryIdx := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(nameColumn):
			nameIdx = i
		case strings.ToLower(injuryColumn):
			injuryIdx = i
		}
	}
	if nameIdx < 0 || injuryIdx < 0 {
		return nil, fmt.Errorf("sheet %s needs %q and %q columns", sheets[0], nameColumn, injuryColumn)
	}

	var out []Subject
	for i, row := range rows[1:] {
		s := Subject{Name: cell(row, nameIdx), InjuryLabel: cell(row, injuryIdx)}
		if i+1 < len(raw) {
			if d, ok := dateCell(f, sheets[0], injuryIdx, i+2, cell(raw[i+1], injuryIdx)); ok {
				s.InjuryLabel = d
			}
		}
		if s.Name == "" || s.InjuryLabel == "" {
			logger.Info("skipping input row", "row", i+2, "reason", "missing name or injury week")
			continue
		}
		out = append(out, s)
	}
	logger.Debug("read subjects", "sheet", sheets[0], "count", len(out))
	return out, nil
}

// dateCell turns a numeric serial date into an ISO date. Text cells are left
// to the label parser.
func dateCell(f *excelize.File, sheet string, col, row int, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	addr, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return "", false
	}
	switch typ, _ := f.GetCellType(sheet, addr); typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return "", false
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// SaveWorkbook writes records to a new workbook at path.
func SaveWorkbook(path string, recs []Record) error {
	f, err := newWorkbook(recs)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WriteWorkbook streams the records as an xlsx document.
func WriteWorkbook(w io.Writer, recs []Record) error {
	f, err := newWorkbook(recs)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newWorkbook(recs []Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}
	header := make([]any, 0, len(Header()))
	for _, h := range Header() {
		header = append(header, h)
	}
	if err := setRow(f, 1, header); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range recs {
		if err := setRow(f, i+2, r.Cells()); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	addr, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, addr, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
