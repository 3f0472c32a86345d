package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"storyreel/internal/logging"
	"storyreel/internal/reader"
)

func newNarrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "narrate <book.json|id>",
		Short: "Narrate a whole book without the interactive reader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNarrate(ctx, cmd, args[0])
		},
	}
}

func runNarrate(cmdCtx *commandContext, cmd *cobra.Command, arg string) error {
	signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.newLogger()
	if err != nil {
		return err
	}
	player, err := cmdCtx.newPlayer(logger)
	if err != nil {
		return err
	}

	b, entry, err := resolveBook(signalCtx, cmdCtx, arg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	session := reader.NewSession(b, player, reader.Options{
		CoverFlipDuration:  cfg.CoverFlipDuration(),
		PageTurnDuration:   cfg.PageTurnDuration(),
		AutoAdvancePadding: cfg.AutoAdvancePadding(),
		BreakpointColumns:  cfg.Reader.BreakpointColumns,
		Logger:             logger,
	})
	defer session.Close()

	fmt.Fprintf(out, "Narrating %q", b.Title)
	if b.AuthorName != "" {
		fmt.Fprintf(out, " by %s", b.AuthorName)
	}
	fmt.Fprintln(out)

	done := session.StartAutoNarration()
	select {
	case <-signalCtx.Done():
		session.StopAutoNarration(true)
		fmt.Fprintln(out, "Narration interrupted")
		return context.Canceled
	case <-done:
	}

	view := session.Snapshot()
	if entry != nil {
		if err := savePosition(context.Background(), cmdCtx, entry, view.SpreadStart); err != nil {
			logger.Warn("failed to save reading position", logging.Error(err))
		}
	}
	fmt.Fprintf(out, "Finished on spread %d of %d pages\n", view.SpreadStart, view.TotalPages)
	return nil
}
