package core

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExportCSVQuoting(t *testing.T) {
	view := []Submission{{Name: "A,B", Email: "a@x.com", Message: "hi\n there", Category: "Roads"}}
	got, err := ExportCSV(view)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := "Name,Email,Message,Category\n" +
		"\"A,B\",a@x.com,\"hi\n there\",Roads\n"
	if string(got) != want {
		t.Fatalf("unexpected export:\n%q\nwant\n%q", got, want)
	}
}

func TestExportCSVDoublesQuotes(t *testing.T) {
	view := []Submission{{Name: `Say "hi"`, Email: "e", Message: "m", Category: ""}}
	got, err := ExportCSV(view)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(got), `"Say ""hi""",e,m,`) {
		t.Fatalf("quotes not doubled: %q", got)
	}
}

func TestExportCSVEmptyView(t *testing.T) {
	for _, view := range [][]Submission{nil, {}} {
		got, err := ExportCSV(view)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		if string(got) != "Name,Email,Message,Category\n" {
			t.Fatalf("empty view export: %q", got)
		}
	}
}

func TestExportReadCSVRoundTrip(t *testing.T) {
	data, err := ExportCSV(sample)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	back, err := ReadCSV(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff(sample, back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestReadCSVReorderedColumns(t *testing.T) {
	in := "category,name,email,message\nRoads,Ann,ann@x.com,hole\n"
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []Submission{{Name: "Ann", Email: "ann@x.com", Message: "hole", Category: "Roads"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reordered (-want +got):\n%s", diff)
	}
}
