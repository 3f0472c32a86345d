// Package shelf persists the local bookshelf: imported books and the last
// reading position per book, backed by SQLite. The store takes an exclusive
// file lock so two processes cannot write the same shelf concurrently.
package shelf
