package model

// SyncBatch is the outcome of one sync run, staged in memory and persisted by
// the store in a single transaction: everything commits or nothing does.
type SyncBatch struct {
	Inserts []*Book
	Updates []*Book

	// Collection is the day collection whose membership changed, nil when the
	// run did no linking. CollectionIsNew marks a collection created by this
	// run; Links are the book ids newly added to it.
	Collection      *Collection
	CollectionIsNew bool
	Links           []string
}

func (b *SyncBatch) Empty() bool {
	return len(b.Inserts) == 0 && len(b.Updates) == 0 &&
		!b.CollectionIsNew && len(b.Links) == 0
}
