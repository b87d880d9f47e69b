package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chadwickbureau/retrosheet/internal/db"
	"github.com/chadwickbureau/retrosheet/internal/echo"
	"github.com/chadwickbureau/retrosheet/internal/repository"
	"github.com/chadwickbureau/retrosheet/internal/retrosheet/ingest"
)

const defaultMaxEventsPerGame = 1000

// EventsCmd creates the events command group: ingest and inspect
// play-by-play event files.
func EventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Ingest and inspect Retrosheet play-by-play event files",
		Long:  "Parse .EVN/.EVA event files and persist the reconstructed game contexts.",
	}
	cmd.AddCommand(EventsIngestCmd())
	cmd.AddCommand(EventsShowCmd())
	return cmd
}

// EventsIngestCmd creates the "events ingest" command.
func EventsIngestCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "ingest <dir>",
		Short: "Discover and load every event file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ingestEvents(cmd, args[0], strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Abort a file on its first malformed record instead of skipping it")
	return cmd
}

// EventsShowCmd creates the "events show" command.
func EventsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Print a persisted game's summary and event list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showGame(cmd, args[0])
		},
	}
}

func ingestEvents(cmd *cobra.Command, dir string, strict bool) error {
	echo.Header("Ingesting Retrosheet Event Files")

	paths, err := ingest.DiscoverEventFiles(dir)
	if err != nil {
		return fmt.Errorf("discover event files: %w", err)
	}
	if len(paths) == 0 {
		echo.Infof("No .EVN/.EVA files found under %s", dir)
		return nil
	}
	echo.Infof("Found %d event file(s) under %s", len(paths), dir)

	echo.Info("Connecting to database...")
	database, err := db.Connect("")
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()
	echo.Success("✓ Connected to database")

	repo := repository.NewRetrosheetContextRepository(database.DB, nil)
	ctx := cmd.Context()

	opts := ingest.Options{MaxEventsPerGame: defaultMaxEventsPerGame, StrictParsing: strict}
	logger := log.New(cmd.ErrOrStderr())
	var gamesLoaded, eventsLoaded int64

	for _, path := range paths {
		parsedGames, err := ingest.ReadEventFile(path, opts, logger)
		if err != nil {
			echo.Infof("  ⚠ %s: %v", path, err)
			continue
		}

		for _, pg := range parsedGames {
			if len(pg.Skipped) > 0 {
				echo.Infof("  %s: skipped %d malformed record(s)", pg.Context.GameID, len(pg.Skipped))
			}
			if err := repo.SaveGameContext(ctx, pg.Context); err != nil {
				echo.Infof("  ⚠ %s: %v", pg.Context.GameID, err)
				continue
			}
			gamesLoaded++
			eventsLoaded += int64(len(pg.Context.Events))
		}
	}

	echo.Successf("✓ Loaded %d game(s), %d event(s)", gamesLoaded, eventsLoaded)
	return nil
}

func showGame(cmd *cobra.Command, gameID string) error {
	database, err := db.Connect("")
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()

	repo := repository.NewRetrosheetContextRepository(database.DB, nil)
	ctx := cmd.Context()

	summary, err := repo.GetGameSummary(ctx, gameID)
	if err != nil {
		return err
	}

	echo.Header(fmt.Sprintf("Game %s", summary.GameID))
	echo.Infof("%s @ %s on %s", summary.VisitingTeam, summary.HomeTeam, summary.GameDate)
	echo.Infof("Source file: %s", summary.SourceFile)
	if summary.WinningTeam != "" {
		echo.Infof("Winner: %s", summary.WinningTeam)
	}
	if summary.WinningPitcher != "" {
		echo.Infof("W: %s  L: %s  SV: %s", summary.WinningPitcher, summary.LosingPitcher, summary.SavePitcher)
	}
	echo.Infof("Events: %d", summary.EventCount)

	events, err := repo.ListEvents(ctx, gameID)
	if err != nil {
		return err
	}
	for _, ev := range events {
		echo.Infof("  [%d] inning %d %s: %s %s", ev.EventID, ev.Inning, sideLabel(ev.Side), ev.Batter, ev.PlayRaw)
	}
	return nil
}

func sideLabel(side int) string {
	if side == 1 {
		return "home"
	}
	return "away"
}
