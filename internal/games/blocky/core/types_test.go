package core

import "testing"

func TestDirOpposite(t *testing.T) {
	for _, d := range AllDirs() {
		if d.Opposite() == d {
			t.Errorf("%s is its own opposite", d)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("opposite of opposite of %s is %s", d, d.Opposite().Opposite())
		}

		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr != -or || dc != -oc {
			t.Errorf("%s delta (%d,%d) does not mirror (%d,%d)", d, dr, dc, or, oc)
		}
	}
}

func TestPosStep(t *testing.T) {
	tests := []struct {
		dir  Dir
		want Pos
	}{
		{DirLeft, P(2, 1)},
		{DirUp, P(1, 2)},
		{DirRight, P(2, 3)},
		{DirDown, P(3, 2)},
	}

	for _, tt := range tests {
		if got := P(2, 2).Step(tt.dir); got != tt.want {
			t.Errorf("Step(%s) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestParseMoves(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"RDLU", "RDLU", false},
		{"r, d, l", "RDL", false},
		{"", "", false},
		{"RXD", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			moves, err := ParseMoves(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMoves(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && MoveString(moves) != tt.want {
				t.Errorf("ParseMoves(%q) = %s, want %s", tt.in, MoveString(moves), tt.want)
			}
		})
	}
}

func TestParseDir(t *testing.T) {
	for _, d := range AllDirs() {
		got, err := ParseDir(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDir(%q) = %v, %v", d.String(), got, err)
		}
		got, err = ParseDir(string(d.Letter()))
		if err != nil || got != d {
			t.Errorf("ParseDir(%q) = %v, %v", string(d.Letter()), got, err)
		}
	}
	if _, err := ParseDir("north"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestFormatMoves(t *testing.T) {
	if got := FormatMoves([]Dir{DirRight, DirDown}); got != "RD, 2" {
		t.Errorf("FormatMoves = %q, want %q", got, "RD, 2")
	}
	if got := FormatMoves(nil); got != ", 0" {
		t.Errorf("FormatMoves(nil) = %q, want %q", got, ", 0")
	}
}
