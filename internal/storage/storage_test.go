package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"volleyzone-tables/internal/standings"
)

const header = "Position,Team,Played,Wins,Losses,Sets For,Sets Against,Sets Difference,Points For,Points Against,Points Quotient,Points\n"

var sampleTeams = []standings.TeamStats{
	{
		Position: "1", Team: "Team A", Played: "10", Wins: "8", Losses: "2",
		SetsFor: "26", SetsAgainst: "9", SetsDifference: "17",
		PointsFor: "740", PointsAgainst: "600", PointsQuotient: "1.233", Points: "20",
	},
	{
		Position: "2", Team: "Team B", Played: "10", Wins: "6", Losses: "4",
		SetsFor: "20", SetsAgainst: "15", SetsDifference: "5",
		PointsFor: "700", PointsAgainst: "650", PointsQuotient: "1.077", Points: "16",
	},
}

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name  string
		teams []standings.TeamStats
		want  string
	}{
		{
			name:  "no teams writes header only",
			teams: nil,
			want:  header,
		},
		{
			name:  "one team",
			teams: sampleTeams[:1],
			want:  header + "1,Team A,10,8,2,26,9,17,740,600,1.233,20\n",
		},
		{
			name:  "teams in given order",
			teams: []standings.TeamStats{sampleTeams[1], sampleTeams[0]},
			want: header +
				"2,Team B,10,6,4,20,15,5,700,650,1.077,16\n" +
				"1,Team A,10,8,2,26,9,17,740,600,1.233,20\n",
		},
		{
			name:  "empty fields kept",
			teams: []standings.TeamStats{{Team: "Bye"}},
			want:  header + ",Bye,,,,,,,,,,\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteCSV(&buf, tt.teams); err != nil {
				t.Fatalf("WriteCSV() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("WriteCSV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTeams); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(sampleTeams)+1 {
		t.Fatalf("got %d lines, want %d", len(lines), len(sampleTeams)+1)
	}
	if lines[0] != standings.Header {
		t.Errorf("header = %q, want %q", lines[0], standings.Header)
	}
	for i, line := range lines[1:] {
		if diff := cmp.Diff(sampleTeams[i].Fields(), strings.Split(line, ",")); diff != "" {
			t.Errorf("line %d mismatch (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestWriteCSV_HeaderStable(t *testing.T) {
	var first, second bytes.Buffer
	if err := WriteCSV(&first, nil); err != nil {
		t.Fatal(err)
	}
	if err := WriteCSV(&second, sampleTeams); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(second.String(), first.String()) {
		t.Errorf("header differs between invocations: %q vs %q", first.String(), second.String())
	}
}

type failingWriter struct {
	allowed int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.allowed == 0 {
		return 0, errors.New("disk full")
	}
	w.allowed--
	return len(p), nil
}

func TestWriteCSV_WriteError(t *testing.T) {
	tests := []struct {
		name    string
		allowed int
	}{
		{"header fails", 0},
		{"row fails", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteCSV(&failingWriter{allowed: tt.allowed}, sampleTeams)
			if err == nil || !strings.Contains(err.Error(), "disk full") {
				t.Errorf("WriteCSV() error = %v, want disk full", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "out", "tables")

	s, err := New(nested)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Errorf("New() did not create output directory %s", nested)
	}
	if s.Dir() != nested {
		t.Errorf("Dir() = %q, want %q", s.Dir(), nested)
	}
}

func TestNew_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/tables")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if want := filepath.Join(home, "tables"); s.Dir() != want {
		t.Errorf("Dir() = %q, want %q", s.Dir(), want)
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		name  string
		dir   string
		label string
		want  string
	}{
		{"current directory", "", "div_2a_men", "div_2a_men.csv"},
		{"output directory", "out", "div_2a_men", filepath.Join("out", "div_2a_men.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Storage{outputDir: tt.dir}
			if got := s.Path(tt.label); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveTable(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// Existing content is overwritten
	stale := filepath.Join(tmpDir, "div_1a_women.csv")
	if err := os.WriteFile(stale, []byte("stale content that is longer than the new file\n"+strings.Repeat("x", 4096)), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := s.SaveTable("div_1a_women", sampleTeams[:1])
	if err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}
	if path != stale {
		t.Errorf("SaveTable() path = %q, want %q", path, stale)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := header + "1,Team A,10,8,2,26,9,17,740,600,1.233,20\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveTable_CurrentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	s, err := New("")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	path, err := s.SaveTable("div_3a_men", nil)
	if err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}
	if path != "div_3a_men.csv" {
		t.Errorf("SaveTable() path = %q, want div_3a_men.csv", path)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "div_3a_men.csv")); err != nil {
		t.Errorf("file not written to current directory: %v", err)
	}
}

func TestSaveTable_CreateError(t *testing.T) {
	s := &Storage{outputDir: filepath.Join(t.TempDir(), "missing")}

	if _, err := s.SaveTable("div_2b_women", sampleTeams); err == nil {
		t.Error("SaveTable() expected error for missing directory, got nil")
	}
}

// headerThenFail writes the header and then fails like a full disk would
func headerThenFail(w io.Writer, teams []standings.TeamStats) error {
	if _, err := io.WriteString(w, standings.Header+"\n"); err != nil {
		return err
	}
	return errors.New("no space left on device")
}

func TestSaveTable_WriteErrorKeepsPreviousFile(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// A good table from an earlier run
	if _, err := s.SaveTable("div_2a_women", sampleTeams); err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}
	previous, err := os.ReadFile(filepath.Join(tmpDir, "div_2a_women.csv"))
	if err != nil {
		t.Fatal(err)
	}

	s.encode = headerThenFail
	if _, err := s.SaveTable("div_2a_women", sampleTeams[:1]); err == nil || !strings.Contains(err.Error(), "no space left") {
		t.Fatalf("SaveTable() error = %v, want write failure", err)
	}

	current, err := os.ReadFile(filepath.Join(tmpDir, "div_2a_women.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(previous), string(current)); diff != "" {
		t.Errorf("previous file changed (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestSaveTable_WriteErrorCreatesNoFile(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	s.encode = headerThenFail

	if _, err := s.SaveTable("div_1b_women", sampleTeams); err == nil {
		t.Fatal("SaveTable() expected error, got nil")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory after failed write, got %v", entries)
	}
}

func TestSaveTable_FileMode(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	path, err := s.SaveTable("div_3a_men", nil)
	if err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("file mode = %v, want 0644", info.Mode().Perm())
	}
}
