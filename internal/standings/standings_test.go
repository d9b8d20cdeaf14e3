package standings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeader(t *testing.T) {
	want := "Position,Team,Played,Wins,Losses,Sets For,Sets Against,Sets Difference,Points For,Points Against,Points Quotient,Points"
	if Header != want {
		t.Errorf("Header = %q, want %q", Header, want)
	}
}

func TestFromCells(t *testing.T) {
	twelve := []string{"1", "Team A", "10", "8", "2", "26", "9", "17", "740", "600", "1.233", "24"}

	tests := []struct {
		name   string
		cells  []string
		wantOK bool
		want   TeamStats
	}{
		{
			name:   "exactly twelve cells",
			cells:  twelve,
			wantOK: true,
			want: TeamStats{
				Position: "1", Team: "Team A", Played: "10", Wins: "8", Losses: "2",
				SetsFor: "26", SetsAgainst: "9", SetsDifference: "17",
				PointsFor: "740", PointsAgainst: "600", PointsQuotient: "1.233", Points: "24",
			},
		},
		{
			name:   "extra cells ignored",
			cells:  append(append([]string{}, twelve...), "extra", "more"),
			wantOK: true,
			want: TeamStats{
				Position: "1", Team: "Team A", Played: "10", Wins: "8", Losses: "2",
				SetsFor: "26", SetsAgainst: "9", SetsDifference: "17",
				PointsFor: "740", PointsAgainst: "600", PointsQuotient: "1.233", Points: "24",
			},
		},
		{
			name:   "eleven cells rejected",
			cells:  twelve[:11],
			wantOK: false,
		},
		{
			name:   "no cells",
			cells:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromCells(tt.cells)
			if ok != tt.wantOK {
				t.Fatalf("FromCells() ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromCells() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFields_RoundTrip(t *testing.T) {
	cells := []string{"3", "Leeds", "9", "5", "4", "18", "15", "3", "700", "690", "1.014", "15"}
	stats, ok := FromCells(cells)
	if !ok {
		t.Fatal("FromCells() rejected twelve cells")
	}
	if diff := cmp.Diff(cells, stats.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
	if len(stats.Fields()) != len(Columns) {
		t.Errorf("Fields() has %d values, want %d", len(stats.Fields()), len(Columns))
	}
}
