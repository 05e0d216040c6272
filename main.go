package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SquareBoard/internal/config"
	boardnet "SquareBoard/internal/net"
	"SquareBoard/internal/state"
	"SquareBoard/internal/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
)

const browseFlag = "--browse"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	cfg.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args
	switch {
	case len(args) > 1 && args[1] == browseFlag:
		runViewer(ctx, cfg, "")
	case len(args) > 1:
		addr, ok := boardnet.ParseShareLink(args[1])
		if !ok {
			logrus.WithField("arg", args[1]).Fatal("Expected a share link like " + boardnet.ShareLink("192.168.1.4", cfg.Port))
		}
		runViewer(ctx, cfg, addr)
	default:
		runHost(ctx, cfg)
	}
}

func runHost(ctx context.Context, cfg config.Config) {
	logrus.Info("Starting as HOST")

	ln, err := boardnet.Listen(cfg.Port)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to start sharing server")
	}

	a := app.NewWithID("squareboard")
	board := ui.NewBoardWidget()
	hub := boardnet.NewHub()
	hub.Publish(board.Snapshot())
	board.OnChange = hub.Publish

	go func() {
		if err := hub.Serve(ctx, ln); err != nil {
			logrus.WithError(err).Error("Sharing server stopped")
		}
	}()

	if cfg.MDNS {
		server, err := boardnet.Advertise(cfg.Port)
		if err != nil {
			logrus.WithError(err).Warn("mDNS advertising disabled")
		} else {
			defer server.Shutdown()
		}
	}

	go func() {
		<-ctx.Done()
		fyne.Do(a.Quit)
	}()

	shareLink := boardnet.ShareLink(boardnet.OutgoingIP(), cfg.Port)
	logrus.WithField("link", shareLink).Info("Share this link with viewers")
	ui.RunApp(a, board, ui.Options{
		Title:     cfg.Title,
		Detail:    "Share: " + shareLink,
		ExportDir: cfg.ExportDir,
	})
}

func runViewer(ctx context.Context, cfg config.Config, addr string) {
	logrus.Info("Starting as VIEWER")

	a := app.NewWithID("squareboard")
	board := ui.NewBoardWidget()
	board.SetReadOnly(true)

	go connectToHost(ctx, cfg, addr, board)
	go func() {
		<-ctx.Done()
		fyne.Do(a.Quit)
	}()

	ui.RunApp(a, board, ui.Options{
		Title:     cfg.Title + " (viewer)",
		ExportDir: cfg.ExportDir,
	})
}

func connectToHost(ctx context.Context, cfg config.Config, addr string, board *ui.BoardWidget) {
	if addr == "" {
		board.SetStatus("Looking for a board on the local network...")
		found, err := boardnet.Browse(ctx, cfg.BrowseTimeout)
		if err != nil {
			logrus.WithError(err).Warn("Host discovery failed")
			board.SetStatus(fmt.Sprintf("No host found: %v", err))
			return
		}
		addr = found
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	viewer, err := boardnet.Dial(dialCtx, addr)
	if err != nil {
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer viewer.Close()
	board.SetStatus("Connected to " + addr + " as " + viewer.LocalAddr())

	err = viewer.Run(ctx, func(s state.Snapshot) {
		fyne.Do(func() { board.ApplySnapshot(s) })
	})
	if err != nil && ctx.Err() == nil {
		logrus.WithError(err).Warn("Lost connection to host")
		board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
		return
	}
	board.SetStatus("Host closed the board")
}
