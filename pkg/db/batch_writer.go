package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WriteFunc is a callback that performs database writes inside a transaction.
type WriteFunc func(ctx context.Context, tx *sql.Tx) error

// ErrBatchWriterClosed is returned by Submit and Flush after Close.
var ErrBatchWriterClosed = errors.New("batch writer closed")

// BatchWriter buffers write operations and commits them in batches, one
// transaction per batch. A failing callback rolls back its whole batch.
// It is not safe for concurrent use.
type BatchWriter struct {
	db     *sql.DB
	buf    []WriteFunc
	cap    int
	closed bool

	// OnError, when set, is called with every failed batch.
	OnError func(error)

	committed int
	firstErr  error
}

// NewBatchWriter creates a writer that flushes once bufferSize callbacks are
// pending.
func NewBatchWriter(db *sql.DB, bufferSize int) *BatchWriter {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &BatchWriter{
		db:  db,
		buf: make([]WriteFunc, 0, bufferSize),
		cap: bufferSize,
	}
}

// Submit enqueues a write function, flushing when the buffer is full.
func (bw *BatchWriter) Submit(ctx context.Context, w WriteFunc) error {
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.buf = append(bw.buf, w)
	if len(bw.buf) >= bw.cap {
		return bw.Flush(ctx)
	}
	return nil
}

// Flush commits the pending callbacks.
func (bw *BatchWriter) Flush(ctx context.Context) error {
	if bw.closed {
		return ErrBatchWriterClosed
	}
	if len(bw.buf) == 0 {
		return nil
	}
	batch := bw.buf
	bw.buf = make([]WriteFunc, 0, bw.cap)

	if err := bw.executeBatch(ctx, batch); err != nil {
		if bw.firstErr == nil {
			bw.firstErr = err
		}
		if bw.OnError != nil {
			bw.OnError(err)
		}
		return err
	}
	bw.committed += len(batch)
	return nil
}

func (bw *BatchWriter) executeBatch(ctx context.Context, batch []WriteFunc) error {
	// Without a DB the callbacks run with a nil tx.
	if bw.db == nil {
		for _, w := range batch {
			if err := w(ctx, nil); err != nil {
				return err
			}
		}
		return nil
	}

	tx, err := bw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for _, w := range batch {
		if err := w(ctx, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch (%d items): %w", len(batch), err)
	}
	return nil
}

// Committed returns the number of callbacks committed so far.
func (bw *BatchWriter) Committed() int { return bw.committed }

// Close flushes the remaining callbacks and returns the first error seen by
// the writer.
func (bw *BatchWriter) Close(ctx context.Context) error {
	if bw.closed {
		return ErrBatchWriterClosed
	}
	_ = bw.Flush(ctx)
	bw.closed = true
	return bw.firstErr
}
