// Package sheets abstracts the spreadsheet backend. The panel consumes any
// Source; the production Google Sheets reader lives outside this service.
package sheets

import "context"

// Source is a point-in-time view of the workbook. Implementations return
// rows as ordered sequences of trimmed-at-read cell values; the first row of
// every tab is its header.
type Source interface {
	// Titles lists the tab names present in the workbook.
	Titles(ctx context.Context) ([]string, error)

	// BatchValues fetches the requested tabs in one pass. Tabs that do not
	// exist are simply absent from the result, not an error.
	BatchValues(ctx context.Context, titles []string) (map[string][][]string, error)
}
