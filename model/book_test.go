package model

import (
	"testing"
	"time"
)

func TestDisplayTitleStripsAuthorSuffix(t *testing.T) {
	b := &Book{Title: "Frankenstein by Mary Wollstonecraft Shelley"}
	if got := b.DisplayTitle(); got != "Frankenstein" {
		t.Errorf("DisplayTitle: got %q", got)
	}

	b = &Book{Title: "Middlemarch"}
	if got := b.DisplayTitle(); got != "Middlemarch" {
		t.Errorf("DisplayTitle: got %q", got)
	}
}

func TestAuthorFallbacks(t *testing.T) {
	b := &Book{Title: "Frankenstein by Mary Shelley", ExplicitAuthor: "Mary Wollstonecraft Shelley"}
	if got := b.Author(); got != "Mary Wollstonecraft Shelley" {
		t.Errorf("Author: got %q", got)
	}

	// Legacy records carry the author only inside the combined title
	b = &Book{Title: "Frankenstein by Mary Shelley"}
	if got := b.Author(); got != "Mary Shelley" {
		t.Errorf("Author: got %q", got)
	}

	b = &Book{Title: "Beowulf"}
	if got := b.Author(); got != "Unknown Author" {
		t.Errorf("Author: got %q", got)
	}
}

func TestLanguage(t *testing.T) {
	b := &Book{LanguageDescription: "Language: German"}
	if got := b.Language(); got != "German" {
		t.Errorf("Language: got %q", got)
	}

	b = &Book{}
	if got := b.Language(); got != "Unknown" {
		t.Errorf("Language: got %q", got)
	}
}

func TestRemoteAssetURLs(t *testing.T) {
	b := &Book{ID: "84"}
	if got := b.CoverURL(); got != "https://www.gutenberg.org/cache/epub/84/pg84.cover.medium.jpg" {
		t.Errorf("CoverURL: got %q", got)
	}
	if got := b.RemoteHTMLURL(); got != "https://www.gutenberg.org/ebooks/84.html.images" {
		t.Errorf("RemoteHTMLURL: got %q", got)
	}
	if got := b.RemoteEPUBURL(); got != "https://www.gutenberg.org/ebooks/84.epub3.images" {
		t.Errorf("RemoteEPUBURL: got %q", got)
	}
}

func TestDayKeyDropsTimeComponent(t *testing.T) {
	morning := time.Date(2026, 2, 6, 9, 15, 0, 0, time.UTC)
	evening := time.Date(2026, 2, 6, 23, 59, 59, 0, time.UTC)
	if DayKey(morning) != DayKey(evening) {
		t.Errorf("DayKey differs within one day: %s vs %s", DayKey(morning), DayKey(evening))
	}
	if DayKey(morning) != "2026-02-06" {
		t.Errorf("DayKey: got %q", DayKey(morning))
	}
}
