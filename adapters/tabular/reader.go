package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"godrift/domain/dataset"
)

// Reader loads numeric feature columns from CSV or Excel files into a
// Frame. Cells that do not parse as numbers make the column non-numeric
// and it is skipped with a log line; drift tests only consume numeric
// columns.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given file, dispatching on extension
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// ReadFrame reads the file into a Frame of numeric columns
func (r *Reader) ReadFrame() (*dataset.Frame, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return rowsToFrame(rows)
}

func (r *Reader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	return rows, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}

// rowsToFrame converts header + data rows into numeric columns. Blank
// cells are rejected rather than imputed: missing-value policy belongs to
// the caller.
func rowsToFrame(rows [][]string) (*dataset.Frame, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file needs a header row and at least one data row, got %d rows", len(rows))
	}

	headers := rows[0]
	data := rows[1:]
	frame := dataset.NewFrame()

	for col, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}

		values := make([]float64, 0, len(data))
		numeric := true
		for rowIdx, row := range data {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				return nil, fmt.Errorf("feature %q has an empty cell at row %d, replace missing values first", name, rowIdx+2)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				numeric = false
				break
			}
			values = append(values, v)
		}

		if !numeric {
			log.Printf("[tabular.Reader] skipping non-numeric column %q", name)
			continue
		}
		if err := frame.AddColumn(name, values); err != nil {
			return nil, fmt.Errorf("failed to add column %q: %w", name, err)
		}
	}

	if len(frame.Features()) == 0 {
		return nil, fmt.Errorf("no numeric columns found")
	}
	return frame, nil
}
