package model //import "github.com/hmistry/gutensync/model"

import (
	"fmt"
	"strings"
)

// Book is one ebook record. The ID is the stable catalog id and the only
// identity: two records with the same ID are the same book no matter how the
// other fields drift. LastReadLocation, LocalFileName and LocalCoverFileName
// are owned by the user and must never be written by a sync.
type Book struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	ExplicitAuthor      string  `json:"explicit_author,omitempty"`
	LanguageDescription string  `json:"language_description,omitempty"`
	Link                string  `json:"link"`
	LastReadLocation    float64 `json:"last_read_location"`
	LocalFileName       string  `json:"local_file_name,omitempty"`
	LocalCoverFileName  string  `json:"local_cover_file_name,omitempty"`
}

type FindBook struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`

	// CollectionDate restricts the result to members of that day's collection.
	CollectionDate *string `json:"collection_date"`

	OrderBy *string `json:"order_by"`
	Limit   *int    `json:"limit"`
}

// DisplayTitle returns the title without the legacy " by author" suffix.
func (b *Book) DisplayTitle() string {
	cleaned := strings.ReplaceAll(b.Title, ":", "")
	if i := strings.Index(cleaned, " by "); i >= 0 {
		return cleaned[:i]
	}
	return cleaned
}

// Author prefers the explicit author and falls back to parsing the legacy
// combined title of older records.
func (b *Book) Author() string {
	if b.ExplicitAuthor != "" {
		return b.ExplicitAuthor
	}
	if parts := strings.Split(b.Title, " : by "); len(parts) > 1 {
		return parts[len(parts)-1]
	}
	if parts := strings.Split(b.Title, " by "); len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return "Unknown Author"
}

// Language extracts the language name from the "Language: X" description.
func (b *Book) Language() string {
	if b.LanguageDescription == "" {
		return "Unknown"
	}
	parts := strings.SplitN(b.LanguageDescription, ": ", 2)
	if len(parts) < 2 {
		return "Unknown"
	}
	return strings.TrimSpace(parts[1])
}

// Remote asset URLs are deterministic functions of the catalog id.

func (b *Book) CoverURL() string {
	return fmt.Sprintf("https://www.gutenberg.org/cache/epub/%s/pg%s.cover.medium.jpg", b.ID, b.ID)
}

func (b *Book) RemoteHTMLURL() string {
	return fmt.Sprintf("https://www.gutenberg.org/ebooks/%s.html.images", b.ID)
}

func (b *Book) RemoteEPUBURL() string {
	return fmt.Sprintf("https://www.gutenberg.org/ebooks/%s.epub3.images", b.ID)
}
