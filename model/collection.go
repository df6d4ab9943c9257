package model

import "time"

// Collection groups the books announced on one calendar day. There is at most
// one collection per day; membership is keyed by book id and idempotent.
type Collection struct {
	Date    time.Time `json:"date"`
	BookIDs []string  `json:"book_ids"`
}

// DayOf normalizes a time to the start of its calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey is the storage key for a collection date.
func DayKey(t time.Time) string {
	return DayOf(t).Format("2006-01-02")
}

func (c *Collection) Key() string {
	return DayKey(c.Date)
}

// CollectionSummary is one row of the collection listing, membership count
// only.
type CollectionSummary struct {
	Date      string `json:"date"`
	BookCount int    `json:"book_count"`
}

func (c *Collection) HasBook(id string) bool {
	for _, b := range c.BookIDs {
		if b == id {
			return true
		}
	}
	return false
}
