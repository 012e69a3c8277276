package heatsheet_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/swimtools/heatsheet/heatsheet"
)

var meetCuts = []string{"A", "AAAA"}

func TestParseIndividualSwim(t *testing.T) {
	text := "ABCDE-XY\n1:05.44\n 15\nDoe, Jane M\n3\nAAAA\n"

	swim, err := heatsheet.ParseIndividualSwim(text, meetCuts)
	if err != nil {
		t.Fatalf("ParseIndividualSwim() error = %v", err)
	}

	want := heatsheet.IndividualSwim{
		Team:    heatsheet.Team{Code: "ABCDE", LSC: "XY"},
		Swimmer: "Doe, Jane M",
		Age:     "15",
		Time:    "1:05.44",
		Lane:    "3",
		CutCode: "AAAA",
	}
	if swim != want {
		t.Errorf("ParseIndividualSwim() = %+v, want %+v", swim, want)
	}

	if swim.String() != text {
		t.Errorf("String() = %q, want %q", swim.String(), text)
	}
}

func TestIndividualLaneRange(t *testing.T) {
	// Lane 0 is not a starting lane.
	text := "ABCDE-XY\n1:05.44\n 15\nDoe, Jane M\n0\nAAAA\n"

	_, err := heatsheet.ParseIndividualSwim(text, meetCuts)
	if err == nil {
		t.Fatal("ParseIndividualSwim() accepted lane 0")
	}
	var ferr *heatsheet.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %T, want *FormatError", err)
	}

	if got := heatsheet.FindIndividualSwims(text, meetCuts); len(got) != 0 {
		t.Errorf("FindIndividualSwims() = %v, want none", got)
	}
}

func TestParseRelaySwim(t *testing.T) {
	text := "A\n:58.21\nXYZ-QR\n2\n"

	swim, err := heatsheet.ParseRelaySwim(text, nil)
	if err != nil {
		t.Fatalf("ParseRelaySwim() error = %v", err)
	}

	want := heatsheet.RelaySwim{
		Team:   heatsheet.Team{Code: "XYZ", LSC: "QR"},
		Letter: "A",
		Time:   ":58.21",
		Lane:   "2",
	}
	if swim != want {
		t.Errorf("ParseRelaySwim() = %+v, want %+v", swim, want)
	}

	if swim.String() != text {
		t.Errorf("String() = %q, want %q", swim.String(), text)
	}
}

func TestFindIndividualSwims(t *testing.T) {
	// Two records separated by header/footer noise the scanner must skip.
	text := "Session 2 - Saturday\n" +
		"ABCDE-XY\n1:05.44\n 15\nDoe, Jane M\n3\nAAAA\n" +
		"Page 4 of 12\n" +
		"ABCDF-XY\nNT\n 16\nRoe, Mary K\n5\n" +
		"Event 12 continued\n"

	swims := heatsheet.FindIndividualSwims(text, meetCuts)
	if len(swims) != 2 {
		t.Fatalf("FindIndividualSwims() found %d records, want 2", len(swims))
	}

	if swims[0].Team.Code != "ABCDE" || swims[1].Team.Code != "ABCDF" {
		t.Errorf("records out of document order: %v", swims)
	}
	if swims[0].CutCode != "AAAA" {
		t.Errorf("CutCode = %q, want AAAA", swims[0].CutCode)
	}
	if swims[1].CutCode != "" {
		t.Errorf("CutCode = %q, want empty", swims[1].CutCode)
	}
	if swims[1].Time != "NT" {
		t.Errorf("Time = %q, want NT", swims[1].Time)
	}

	// Identical input yields an identical sequence.
	again := heatsheet.FindIndividualSwims(text, meetCuts)
	if !reflect.DeepEqual(swims, again) {
		t.Error("repeated scan produced a different sequence")
	}
}

func TestFindRelaySwims(t *testing.T) {
	text := "Heat 1 of 2\n" +
		"A\n:58.21\nXYZ-QR\n2\n" +
		"B\n1:02.33\nABCDE-XY\n4\nAAAA\n"

	swims := heatsheet.FindRelaySwims(text, meetCuts)
	if len(swims) != 2 {
		t.Fatalf("FindRelaySwims() found %d records, want 2", len(swims))
	}
	if swims[0].Letter != "A" || swims[1].Letter != "B" {
		t.Errorf("records out of document order: %v", swims)
	}
	if swims[1].CutCode != "AAAA" {
		t.Errorf("CutCode = %q, want AAAA", swims[1].CutCode)
	}
}

// A declared code that prefixes another declared code must not truncate the
// match: AAAA has to win over A whenever the record carries AAAA.
func TestCutAlternationPrefersLongestCode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "long code",
			text: "ABCDE-XY\n1:05.44\n 15\nDoe, Jane M\n3\nAAAA\n",
			want: "AAAA",
		},
		{
			name: "short code",
			text: "ABCDE-XY\n1:05.44\n 15\nDoe, Jane M\n3\nA\n",
			want: "A",
		},
		{
			name: "no trailing newline",
			text: "ABCDE-XY\n1:05.44\n 15\nDoe, Jane M\n3\nAAAA",
			want: "AAAA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swims := heatsheet.FindIndividualSwims(tt.text, meetCuts)
			if len(swims) != 1 {
				t.Fatalf("found %d records, want 1", len(swims))
			}
			if swims[0].CutCode != tt.want {
				t.Errorf("CutCode = %q, want %q", swims[0].CutCode, tt.want)
			}
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	individual := []heatsheet.IndividualSwim{
		{
			Team:    heatsheet.Team{Code: "ABCDE", LSC: "XY"},
			Swimmer: "Doe, Jane M",
			Age:     "15",
			Time:    "1:05.44",
			Lane:    "3",
			CutCode: "AAAA",
		},
		{
			Team:    heatsheet.Team{Code: "RMSC", LSC: "PV"},
			Swimmer: "Smith, John Q",
			Age:     "9",
			Time:    "NT",
			Lane:    "1",
		},
	}
	for _, swim := range individual {
		parsed, err := heatsheet.ParseIndividualSwim(swim.String(), meetCuts)
		if err != nil {
			t.Fatalf("ParseIndividualSwim(%q) error = %v", swim.String(), err)
		}
		if parsed != swim {
			t.Errorf("round trip of %+v = %+v", swim, parsed)
		}
	}

	relay := []heatsheet.RelaySwim{
		{
			Team:   heatsheet.Team{Code: "XYZ", LSC: "QR"},
			Letter: "A",
			Time:   ":58.21",
			Lane:   "2",
		},
		{
			Team:    heatsheet.Team{Code: "ABCDE", LSC: "XY"},
			Letter:  "B",
			Time:    "1:45.01",
			Lane:    "8",
			CutCode: "A",
		},
	}
	for _, swim := range relay {
		parsed, err := heatsheet.ParseRelaySwim(swim.String(), meetCuts)
		if err != nil {
			t.Fatalf("ParseRelaySwim(%q) error = %v", swim.String(), err)
		}
		if parsed != swim {
			t.Errorf("round trip of %+v = %+v", swim, parsed)
		}
	}
}

func BenchmarkFindIndividualSwims(b *testing.B) {
	text := "ABCDE-XY\n1:05.44\n 15\nDoe, Jane M\n3\nAAAA\n" +
		"ABCDF-XY\nNT\n 16\nRoe, Mary K\n5\n"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		heatsheet.FindIndividualSwims(text, meetCuts)
	}
}
