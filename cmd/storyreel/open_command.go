package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"storyreel/internal/logging"
	"storyreel/internal/reader"
	"storyreel/internal/viewport"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <book.json|id>",
		Short: "Read a book interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(ctx, cmd, args[0])
		},
	}
}

func runOpen(cmdCtx *commandContext, cmd *cobra.Command, arg string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("open requires an interactive terminal; use `storyreel narrate` for headless playback")
	}

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

	columns, err := viewport.Columns(os.Stdout)
	if err != nil {
		return err
	}

	changed := make(chan struct{}, 1)
	done := make(chan struct{})

	session := reader.NewSession(b, player, reader.Options{
		CoverFlipDuration:  cfg.CoverFlipDuration(),
		PageTurnDuration:   cfg.PageTurnDuration(),
		AutoAdvancePadding: cfg.AutoAdvancePadding(),
		BreakpointColumns:  cfg.Reader.BreakpointColumns,
		Layout:             reader.LayoutForColumns(columns, cfg.Reader.BreakpointColumns),
		Logger:             logger,
		OnClose:            func() { close(done) },
		OnChange: func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		},
	})
	defer session.Close()

	var width atomic.Int64
	width.Store(int64(columns))
	watcher := viewport.NewWatcher(os.Stdout, logger, func(c int) {
		width.Store(int64(c))
		session.HandleViewportWidth(c)
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err := watcher.Start(signalCtx); err != nil {
		return err
	}
	defer watcher.Stop()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan keyEvent, 4)
	go readKeys(os.Stdin, events, quit)

	lastSpread := 0
	draw := func() {
		view := session.Snapshot()
		if view.Cover == reader.CoverOpen {
			lastSpread = view.SpreadStart
		}
		frame := renderView(view, int(width.Load()))
		fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H"+strings.ReplaceAll(frame, "\n", "\r\n")+"\r\n")
	}
	draw()

	sig := signalCtx.Done()
	for {
		select {
		case <-sig:
			sig = nil
			session.Close()
		case <-done:
			if err := savePosition(context.Background(), cmdCtx, entry, lastSpread); err != nil {
				logger.Warn("failed to save reading position", logging.Error(err))
			}
			return nil
		case <-changed:
			draw()
		case key := <-events:
			handleKey(session, key)
		}
	}
}

func handleKey(session *reader.Session, key keyEvent) {
	switch key {
	case keyEscape, keyQuit:
		session.HandleKey(reader.KeyEscape)
	case keyArrowLeft:
		session.HandleKey(reader.KeyArrowLeft)
	case keyArrowRight:
		if session.Snapshot().Cover == reader.CoverClosed {
			session.OpenCover()
			return
		}
		session.HandleKey(reader.KeyArrowRight)
	case keySpace:
		view := session.Snapshot()
		if view.Left != nil && view.Left.Kind == reader.PageText {
			session.TogglePageNarration(view.Left.Number)
		}
	case keyAuto:
		if session.AutoNarrating() {
			session.StopAutoNarration(true)
			return
		}
		session.StartAutoNarration()
	}
}
