package spectrum

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadCSVWithHeader(t *testing.T) {
	in := "pulseheight,counts_ch_A,extra\n0.5,10,x\n1.0,20,y\n1.5,15,z\n"
	s, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if s[1] != (Bin{Position: 1.0, Counts: 20}) {
		t.Fatalf("s[1] = %+v", s[1])
	}
}

func TestReadCSVWithoutHeader(t *testing.T) {
	s, err := ReadCSV(strings.NewReader("1,2\n2,3\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"non numeric body": "x,y\n1,2\nfoo,3\n",
		"one column":       "1\n",
		"not increasing":   "2,1\n1,1\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestReadCSVErrorReportsFileLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "blank lines", in: "x,y\n\n1,2\n\nfoo,3\n", want: "line 5:"},
		{name: "quoted newline", in: "1,2\n\"2\",\"3\n\"\nfoo,4\n", want: "line 4:"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.in))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	s := mustNew(t, []float64{0.1, 0.2, 1e6}, []float64{3, 4.25, 0})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, s, "energy", "counts"); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "energy,counts\n") {
		t.Fatalf("missing header: %q", buf.String())
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	for i := range s {
		if got[i] != s[i] {
			t.Fatalf("bin %d: got %+v, want %+v", i, got[i], s[i])
		}
	}
}

func TestWriteCSVBadHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, "only"); err == nil {
		t.Fatal("expected error for one-column header")
	}
}
