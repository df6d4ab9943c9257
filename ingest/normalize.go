package ingest

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/util/parsers/rss"
)

// Catalog columns (0-indexed): id, type, (unused), title, language code,
// author list. All optionally double-quoted.
const minCatalogColumns = 6

// BookFromCatalogRow turns one catalog row into a new Book. Rows with fewer
// than six columns and rows that do not meet the Text/English criterion are
// rejected with ErrRowRejected; a rejection filters the row out, it is not a
// batch failure.
func BookFromCatalogRow(row []string) (*model.Book, error) {
	if len(row) < minCatalogColumns {
		return nil, errors.Wrapf(ErrRowRejected, "malformed row: %d columns", len(row))
	}

	id := stripQuotes(row[0])
	bookType := stripQuotes(row[1])
	title := stripQuotes(row[3])
	langCode := stripQuotes(row[4])
	authors := stripQuotes(row[5])

	if !eligible(bookType, langCode) {
		return nil, errors.Wrapf(ErrRowRejected, "type %q language %q does not meet the Text/English criterion", bookType, langCode)
	}

	book := &model.Book{ID: id}
	applyCatalogFields(book, title, langCode, authors)
	return book, nil
}

// UpdateBookFromCatalogRow refreshes the catalog-origin fields of an existing
// Book from a row with the same id. When the row no longer passes the filter
// it returns ErrEligibilityLost and leaves the book untouched; the caller
// keeps the stored record as it is. User-owned fields are never written.
func UpdateBookFromCatalogRow(book *model.Book, row []string) error {
	if len(row) < minCatalogColumns {
		return errors.Wrapf(ErrRowRejected, "malformed row: %d columns", len(row))
	}

	bookType := stripQuotes(row[1])
	title := stripQuotes(row[3])
	langCode := stripQuotes(row[4])
	authors := stripQuotes(row[5])

	if !eligible(bookType, langCode) {
		return errors.Wrapf(ErrEligibilityLost, "book %s no longer meets the Text/English criterion", book.ID)
	}

	applyCatalogFields(book, title, langCode, authors)
	return nil
}

// BookFromFeedItem turns one daily feed item into a Book candidate. Feed
// items are accepted regardless of type and language. The id is the last
// path segment of the link when that segment is a non-negative integer,
// otherwise a generated identifier.
func BookFromFeedItem(item rss.Item) *model.Book {
	return &model.Book{
		ID:                  deriveFeedID(item.Link),
		Title:               item.Title,
		LanguageDescription: item.Description,
		Link:                item.Link,
	}
}

func eligible(bookType, langCode string) bool {
	return bookType == "Text" && strings.EqualFold(langCode, "en")
}

func applyCatalogFields(book *model.Book, title, langCode, authors string) {
	combined := title
	if authors != "" && !strings.EqualFold(authors, "unknown") {
		combined = fmt.Sprintf("%s by %s", title, authors)
	}

	book.Title = combined
	book.ExplicitAuthor = authors
	book.LanguageDescription = languageDescription(langCode)
	book.Link = bookLink(book.ID)
}

func bookLink(id string) string {
	return "https://www.gutenberg.org/ebooks/" + id
}

// languageDescription expands a language code into its display form, e.g.
// "en" -> "Language: English". Unknown codes fall back to the raw code.
func languageDescription(code string) string {
	name := code
	if tag, err := language.Parse(code); err == nil {
		if displayName := display.English.Languages().Name(tag); displayName != "" {
			name = displayName
		}
	}
	name = cases.Title(language.English).String(name)
	return "Language: " + name
}

func deriveFeedID(link string) string {
	if u, err := url.Parse(link); err == nil {
		segment := path.Base(u.Path)
		if n, err := strconv.Atoi(segment); err == nil && n >= 0 {
			return strconv.Itoa(n)
		}
	}
	return uuid.New().String()
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
