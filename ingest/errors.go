package ingest

import "github.com/pkg/errors"

var (
	// ErrSourceUnavailable means the catalog file or feed could not be
	// fetched at all. Fatal to the sync call, the store is untouched.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedBatch means the source structure could not be parsed.
	// Fatal to the sync call, partially parsed items are discarded.
	ErrMalformedBatch = errors.New("malformed batch")

	// ErrRowRejected marks a row that does not meet the import criteria or
	// has too few columns. Local to the row, the batch continues.
	ErrRowRejected = errors.New("row rejected")

	// ErrEligibilityLost marks an update row that no longer passes the
	// catalog filter. The stored record is preserved unchanged and the row
	// is excluded from linking.
	ErrEligibilityLost = errors.New("row no longer eligible")

	// ErrCommitFailed means the final save failed. Nothing was persisted.
	ErrCommitFailed = errors.New("commit failed")

	// ErrSyncInProgress is returned synchronously when a sync of the same
	// kind is already running.
	ErrSyncInProgress = errors.New("sync already in progress")
)
