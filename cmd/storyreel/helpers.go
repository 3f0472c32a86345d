package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"storyreel/internal/book"
	"storyreel/internal/shelf"
)

// resolveBook loads the book named by arg, which is either a path to a book
// JSON file or the id of a shelved book. The returned entry is nil when the
// book was loaded straight from a file.
func resolveBook(ctx context.Context, cmdCtx *commandContext, arg string) (*book.Book, *shelf.Entry, error) {
	if _, err := os.Stat(arg); err == nil {
		b, err := book.Load(arg)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil
	}

	var b *book.Book
	var entry *shelf.Entry
	err := cmdCtx.withShelf(func(store *shelf.Store) error {
		found, err := store.Get(ctx, arg)
		if err != nil {
			if errors.Is(err, shelf.ErrNotFound) {
				return fmt.Errorf("%q is neither a readable file nor a shelved book id", arg)
			}
			return err
		}
		entry = found
		b, err = book.Load(found.SourcePath)
		if err != nil {
			return fmt.Errorf("load shelved book %s: %w", found.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return b, entry, nil
}

// savePosition persists the final spread for a shelved book. Best effort;
// errors are returned for the caller to log, not to fail the session.
func savePosition(ctx context.Context, cmdCtx *commandContext, entry *shelf.Entry, spreadStart int) error {
	if entry == nil {
		return nil
	}
	return cmdCtx.withShelf(func(store *shelf.Store) error {
		return store.SavePosition(ctx, entry.ID, spreadStart)
	})
}
