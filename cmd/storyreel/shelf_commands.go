package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"storyreel/internal/book"
	"storyreel/internal/shelf"
)

func newShelfCommand(ctx *commandContext) *cobra.Command {
	shelfCmd := &cobra.Command{
		Use:   "shelf",
		Short: "Manage the local bookshelf",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShelfList(ctx, cmd)
		},
	}

	shelfCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List shelved books",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShelfList(ctx, cmd)
		},
	})

	shelfCmd.AddCommand(&cobra.Command{
		Use:   "add <book.json>",
		Short: "Import a book file onto the shelf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShelfAdd(ctx, cmd, args[0])
		},
	})

	shelfCmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a book from the shelf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withShelf(func(store *shelf.Store) error {
				if err := store.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	})

	shelfCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one shelved book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShelfShow(ctx, cmd, args[0])
		},
	})

	return shelfCmd
}

func runShelfList(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withShelf(func(store *shelf.Store) error {
		entries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "The shelf is empty. Add a book with `storyreel shelf add <book.json>`.")
			return nil
		}

		titler := cases.Title(language.English)
		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				entry.ID,
				titler.String(entry.Title),
				entry.AuthorName,
				strconv.Itoa(entry.PageCount),
				strconv.Itoa(entry.LastSpread),
				entry.AddedAt.Local().Format("2006-01-02 15:04"),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"ID", "Title", "Author", "Pages", "Last Spread", "Added"},
			rows,
			3, 4,
		))
		return nil
	})
}

func runShelfAdd(ctx *commandContext, cmd *cobra.Command, path string) error {
	b, err := book.Load(path)
	if err != nil {
		return err
	}
	return ctx.withShelf(func(store *shelf.Store) error {
		entry, err := store.Add(cmd.Context(), b, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shelved %q as %s\n", entry.Title, entry.ID)
		return nil
	})
}

func runShelfShow(ctx *commandContext, cmd *cobra.Command, id string) error {
	return ctx.withShelf(func(store *shelf.Store) error {
		entry, err := store.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		rows := [][]string{
			{"id", entry.ID},
			{"title", entry.Title},
			{"author", entry.AuthorName},
			{"source", entry.SourcePath},
			{"pages", strconv.Itoa(entry.PageCount)},
			{"last spread", strconv.Itoa(entry.LastSpread)},
			{"added", entry.AddedAt.Local().Format(time.RFC1123)},
			{"updated", entry.UpdatedAt.Local().Format(time.RFC1123)},
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
		return nil
	})
}
