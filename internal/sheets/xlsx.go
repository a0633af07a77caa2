package sheets

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads a workbook export (.xlsx) from disk. The file is reopened
// on every call so each request sees a fresh snapshot; nothing is cached
// between requests.
type XLSXSource struct {
	path string
}

func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{path: path}
}

func (s *XLSXSource) Titles(ctx context.Context) ([]string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("sheets: open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

func (s *XLSXSource) BatchValues(ctx context.Context, titles []string) (map[string][][]string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("sheets: open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	out := make(map[string][][]string, len(titles))
	for _, title := range titles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rows, err := f.GetRows(title)
		if err != nil {
			// Missing tabs are not an error; the caller only asked on the off
			// chance the period already has them.
			continue
		}
		out[title] = rows
	}
	return out, nil
}
