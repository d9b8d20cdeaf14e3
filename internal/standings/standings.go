package standings

import "strings"

// NumColumns is the number of cells a table row needs to become a TeamStats.
const NumColumns = 12

// Columns lists the CSV column names in output order.
var Columns = [NumColumns]string{
	"Position",
	"Team",
	"Played",
	"Wins",
	"Losses",
	"Sets For",
	"Sets Against",
	"Sets Difference",
	"Points For",
	"Points Against",
	"Points Quotient",
	"Points",
}

// Header is the first line of every CSV file, without the trailing newline.
var Header = strings.Join(Columns[:], ",")

// TeamStats represents one team's standings entry for a division
type TeamStats struct {
	Position       string `json:"position"`
	Team           string `json:"team"`
	Played         string `json:"played"`
	Wins           string `json:"wins"`
	Losses         string `json:"losses"`
	SetsFor        string `json:"sets_for"`
	SetsAgainst    string `json:"sets_against"`
	SetsDifference string `json:"sets_difference"`
	PointsFor      string `json:"points_for"`
	PointsAgainst  string `json:"points_against"`
	PointsQuotient string `json:"points_quotient"`
	Points         string `json:"points"`
}

// FromCells maps table cells positionally onto a TeamStats.
// Cells past the twelfth are ignored; ok is false when there are fewer than twelve.
func FromCells(cells []string) (stats TeamStats, ok bool) {
	if len(cells) < NumColumns {
		return TeamStats{}, false
	}
	return TeamStats{
		Position:       cells[0],
		Team:           cells[1],
		Played:         cells[2],
		Wins:           cells[3],
		Losses:         cells[4],
		SetsFor:        cells[5],
		SetsAgainst:    cells[6],
		SetsDifference: cells[7],
		PointsFor:      cells[8],
		PointsAgainst:  cells[9],
		PointsQuotient: cells[10],
		Points:         cells[11],
	}, true
}

// Fields returns the values in column order
func (t TeamStats) Fields() []string {
	return []string{
		t.Position,
		t.Team,
		t.Played,
		t.Wins,
		t.Losses,
		t.SetsFor,
		t.SetsAgainst,
		t.SetsDifference,
		t.PointsFor,
		t.PointsAgainst,
		t.PointsQuotient,
		t.Points,
	}
}
