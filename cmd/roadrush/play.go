package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/game"
	"github.com/vovakirdan/roadrush/internal/platform/eventlog"
	"github.com/vovakirdan/roadrush/internal/platform/term"
	"github.com/vovakirdan/roadrush/internal/platform/tui"
	"github.com/vovakirdan/roadrush/internal/replay"
	"github.com/vovakirdan/roadrush/internal/storage"
)

// Frontend names accepted by --frontend.
const (
	frontendTea   = "tea"
	frontendTcell = "tcell"
)

var (
	flagFrontend string
	flagRecord   bool
	flagPlayer   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Controls:
  A/Left     - Steer left
  D/Right    - Steer right
  W/Up       - Speed up
  S/Down     - Slow down
  R          - Restart (after game over)
  Esc/Ctrl+C - Quit

Frontends:
  tea    - Bubble Tea program (default)
  tcell  - Classic poll/update/draw/sleep loop on tcell

Difficulty options:
  easy   - Start slow, speed ramps up with score
  normal - Start at the default speed, ramps up
  hard   - Start fast, ramps up
  fixed  - No automatic ramp, speed keys only

Examples:
  roadrush play
  roadrush play --frontend tcell
  roadrush play --difficulty hard --record
  roadrush play --seed 42 --log-file road.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFrontend, "frontend", frontendTea, "Frontend: tea or tcell")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session for replay")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with recordings")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if flagFrontend != frontendTea && flagFrontend != frontendTcell {
		fmt.Fprintf(os.Stderr, "Error: unknown frontend %q (want tea or tcell)\n", flagFrontend)
		os.Exit(1)
	}

	cfg, err := loadRoadConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := resolveSeed(flagSeed)
	g, err := game.New(cfg, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(flagLogFile, flagLogLevel, "roadrush")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger.Info("starting game", "frontend", flagFrontend, "seed", seed)

	sinks := game.MultiSink{eventlog.New(logger)}

	var rec *replay.Recorder
	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
			// Continue without recording - game still works
		} else {
			defer store.Close()
			rec = startRecording(store, cfg, seed, logger)
			if rec != nil {
				sinks = append(sinks, rec)
			}
		}
	}

	frames, runErr := runFrontend(cmd.Context(), flagFrontend, g, sinks, nil, "")

	if rec != nil {
		if err := rec.Close(frames); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: recording incomplete: %v\n", err)
		}
		fmt.Printf("Recorded session %s (%d frames)\n", shortID(rec.SessionID()), frames)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	s := g.State()
	fmt.Printf("Rounds: %d  Last score: %d  Speed: %d\n", g.Round(), s.Score, s.Speed)
}

// startRecording opens a journal session, or returns nil if that fails.
func startRecording(store *storage.Store, cfg config.RoadConfig, seed int64, logger *log.Logger) *replay.Recorder {
	rec, err := replay.Start(store, cfg, seed, flagFrontend, flagPlayer, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not start recording: %v\n", err)
		return nil
	}
	logger.Info("recording", "replay", rec.SessionID())
	return rec
}

// runFrontend plays g on the chosen frontend until it ends and returns the
// number of frames run. A non-nil playback source replaces the keyboard.
func runFrontend(ctx context.Context, frontend string, g *game.Game, sink game.EventSink, playback game.InputSource, title string) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if frontend == frontendTcell {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		t, err := term.Open()
		if err != nil {
			return 0, fmt.Errorf("cannot open terminal: %w", err)
		}
		defer t.Close()

		opts := []term.Option{term.WithEventSink(sink)}
		if playback != nil {
			opts = append(opts, term.WithPlayback(playback))
		}
		ctrl, err := t.Play(ctx, g, opts...)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return ctrl.FrameCount(), err
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: flagSeed}

	opts := []tui.ModelOption{tui.WithEventSink(sink)}
	if playback != nil {
		opts = append(opts, tui.WithPlayback(playback))
	}
	if title != "" {
		opts = append(opts, tui.WithTitle(title))
	}

	final, err := tui.Run(tui.NewModel(g, rc, opts...))
	return final.Controller().FrameCount(), err
}
