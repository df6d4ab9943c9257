package csv

import (
	"reflect"
	"testing"
)

func TestParseDropsHeaderAndBlankRows(t *testing.T) {
	content := "id,type,issued,title,language,authors\n84,Text,1993-10-01,Frankenstein,en,Mary Shelley\n\n1342,Text,1998-06-01,Pride and Prejudice,en,Jane Austen\n"
	rows := Parse(content)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "84" || rows[1][0] != "1342" {
		t.Errorf("unexpected ids: %q, %q", rows[0][0], rows[1][0])
	}
}

func TestParseRowQuotedComma(t *testing.T) {
	rows := Parse("header\n11,Text,,\"Alice's Adventures in Wonderland\",en,\"Carroll, Lewis\"")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{"11", "Text", "", "Alice's Adventures in Wonderland", "en", "Carroll, Lewis"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("got %v, want %v", rows[0], want)
	}
}

func TestParseRowQuotesNeverEmitted(t *testing.T) {
	rows := Parse("header\n\"84\",\"Text\",,\"Frankenstein\",\"en\",\"Mary Shelley\"")
	want := []string{"84", "Text", "", "Frankenstein", "en", "Mary Shelley"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("got %v, want %v", rows[0], want)
	}
}

// A trailing unmatched quote leaves the toggle in "inside" state for the rest
// of the row. This matches the catalog source, it is not corrected.
func TestParseRowTrailingUnmatchedQuote(t *testing.T) {
	rows := Parse("header\na,\"b,c")
	want := []string{"a", "b,c"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("got %v, want %v", rows[0], want)
	}
}

func TestParseCarriageReturns(t *testing.T) {
	rows := Parse("header\r\n84,Text\r\n")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{"84", "Text"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("got %v, want %v", rows[0], want)
	}
}

func TestParseEmptyContent(t *testing.T) {
	if rows := Parse(""); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
	if rows := Parse("header only"); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
