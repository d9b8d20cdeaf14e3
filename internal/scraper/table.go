package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"volleyzone-tables/internal/standings"
)

const (
	rowSelector  = "tr.tableContents"
	cellSelector = "td"
)

// ParseTable extracts standings rows from an HTML fragment.
//
// Every tr.tableContents element contributes one record when it has at least
// twelve td cells; shorter rows are skipped. Records are returned in document order.
// Stray rows outside a <table> element are dropped by the HTML parser.
func ParseTable(r io.Reader) ([]standings.TeamStats, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "reading table fragment"), ErrParse)
	}

	teams := make([]standings.TeamStats, 0)
	doc.Find(rowSelector).Each(func(i int, row *goquery.Selection) {
		cells := row.Find(cellSelector).Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})

		if stats, ok := standings.FromCells(cells); ok {
			teams = append(teams, stats)
		}
	})

	return teams, nil
}

// ParseTableString is ParseTable for an in-memory fragment
func ParseTableString(html string) ([]standings.TeamStats, error) {
	return ParseTable(strings.NewReader(html))
}
