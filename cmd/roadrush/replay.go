package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/platform/eventlog"
	"github.com/vovakirdan/roadrush/internal/replay"
	"github.com/vovakirdan/roadrush/internal/storage"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or verify a recorded session",
	Long: `Play a recorded session back, or verify it.

The session ID may be abbreviated to any unique prefix, such as the
eight characters shown by "roadrush replays".

Playback feeds the recorded keys to a fresh game built from the
recorded seed and configuration. Press Esc or Q to stop watching.

--verify runs the session headless and checks that every recorded round
ends with the same score, speed and frame. It exits with status 1 when
they differ.

Examples:
  roadrush replay 1a2b3c4d
  roadrush replay 1a2b3c4d --frontend tcell
  roadrush replay 1a2b3c4d --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Verify the session headless instead of playing it")
	replayCmd.Flags().StringVar(&flagFrontend, "frontend", frontendTea, "Frontend: tea or tcell")
}

func runReplay(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.ResolveID(args[0])
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintf(os.Stderr, "Error: no session matches %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'roadrush replays --plain' to see recorded sessions.")
		case errors.Is(err, storage.ErrAmbiguous):
			fmt.Fprintf(os.Stderr, "Error: %q matches more than one session, use a longer prefix\n", args[0])
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if flagVerify {
		if !verifySession(store, id) {
			os.Exit(1)
		}
		return
	}

	if err := watchSession(cmd, store, id, flagFrontend); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// verifySession prints a per-round comparison and reports whether the
// session reproduced.
func verifySession(store *storage.Store, id string) bool {
	report, err := replay.Verify(store, id)
	if report == nil {
		fmt.Fprintf(os.Stderr, "Error verifying session: %v\n", err)
		return false
	}

	fmt.Printf("Session %s (%d frames)\n", shortID(id), report.Frames)
	fmt.Println()
	fmt.Printf("  %-5s  %-18s  %-18s\n", "Round", "Recorded", "Replayed")
	fmt.Printf("  %-5s  %-18s  %-18s\n", "-----", "--------", "--------")

	n := max(len(report.Expected), len(report.Replayed))
	for i := 0; i < n; i++ {
		fmt.Printf("  %-5d  %-18s  %-18s\n", i+1, roundAt(report.Expected, i), roundAt(report.Replayed, i))
	}
	if n == 0 {
		fmt.Println("  (no finished rounds)")
	}

	fmt.Println()
	if err != nil {
		fmt.Printf("FAILED: %v\n", err)
		return false
	}
	fmt.Println("OK")
	return true
}

func roundAt(rounds []storage.Round, i int) string {
	if i >= len(rounds) {
		return "-"
	}
	r := rounds[i]
	return fmt.Sprintf("%d @%d (spd %d)", r.Score, r.EndFrame, r.Speed)
}

// watchSession plays a recorded session back on the given frontend.
func watchSession(cmd *cobra.Command, store *storage.Store, id, frontend string) error {
	pb, err := replay.Load(store, id)
	if err != nil {
		return err
	}
	g, err := pb.NewGame()
	if err != nil {
		return fmt.Errorf("cannot rebuild game: %w", err)
	}

	logger, closeLog, err := newLogger(flagLogFile, flagLogLevel, "roadrush-replay")
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("watching", "replay", id, "seed", pb.Session.Seed, "end", pb.End())

	frames, err := runFrontend(cmd.Context(), frontend, g, eventlog.New(logger), pb.Source(), "REPLAY "+shortID(id))
	if err != nil {
		return err
	}

	fmt.Printf("Watched %d of %d frames of session %s\n", frames, pb.End()+1, shortID(id))
	return nil
}
