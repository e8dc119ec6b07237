package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roadrush/internal/platform/tui"
	"github.com/vovakirdan/roadrush/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded sessions",
	Long: `Browse the sessions in the replay database.

The browser lists sessions newest first. Select one with Enter to watch
it, press V to verify it reproduces, X to delete it.

Use --plain for a text listing instead.

Examples:
  roadrush replays
  roadrush replays --plain --limit 50`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the interactive browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of sessions to list")
}

func runReplays(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain {
		if err := printSessions(store, flagLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, height := terminalSize()
	id, err := tui.RunReplayBrowser(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
		os.Exit(1)
	}
	if id == "" {
		return
	}

	if err := watchSession(cmd, store, id, frontendTea); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSessions(store *storage.Store, limit int) error {
	sessions, err := store.Sessions(limit)
	if err != nil {
		return err
	}

	fmt.Println("Recorded sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'roadrush play --record' to record one.")
		return nil
	}

	fmt.Printf("  %-8s  %-16s  %-5s  %-12s  %6s  %8s\n", "ID", "Started", "Via", "Player", "Rounds", "Frames")
	fmt.Printf("  %-8s  %-16s  %-5s  %-12s  %6s  %8s\n", "--", "-------", "---", "------", "------", "------")

	for _, s := range sessions {
		frames := "open"
		if s.Finished() {
			frames = fmt.Sprintf("%d", s.Frames)
		}
		player := s.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-8s  %-16s  %-5s  %-12s  %6d  %8s\n",
			shortID(s.ID),
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Frontend,
			player,
			s.Rounds,
			frames,
		)
	}
	return nil
}
