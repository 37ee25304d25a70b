package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/repos"
	"github.com/footyalerts/footy-alerts/internal/squiggle"
	"github.com/footyalerts/footy-alerts/internal/types"
)

// FixtureFetcher is the upstream REST collaborator used to backfill games
// the store hasn't seen yet.
type FixtureFetcher interface {
	FetchGame(ctx context.Context, gameID uint32) (*types.Game, error)
	FetchGames(ctx context.Context, round, year uint16) ([]*types.Game, error)
}

// Notifier is the slice of NotifierService the processor needs.
type Notifier interface {
	Notify(ctx context.Context, game *types.Game, notification *Notification) error
}

// ProcessorService reconciles incoming stream events against stored game
// snapshots and triggers notifications. ProcessEvent is the single entry
// point the stream loop drives.
type ProcessorService interface {
	ProcessEvent(ctx context.Context, event squiggle.Event) error
}

type processorService struct {
	db       *gorm.DB
	log      *logger.Logger
	games    repos.GameRepo
	alerts   repos.AlertRepo
	fetcher  FixtureFetcher
	notifier Notifier
}

func NewProcessorService(db *gorm.DB, baseLog *logger.Logger, games repos.GameRepo, alerts repos.AlertRepo, fetcher FixtureFetcher, notifier Notifier) ProcessorService {
	serviceLog := baseLog.With("service", "ProcessorService")
	return &processorService{
		db:       db,
		log:      serviceLog,
		games:    games,
		alerts:   alerts,
		fetcher:  fetcher,
		notifier: notifier,
	}
}

// ProcessEvent loads (or backfills) the game the event belongs to, merges
// the event into the snapshot, persists it, and sends any due notification
// that hasn't already been recorded in the ledger. The ledger entry is
// written before the fan-out: a crash in between loses the notification
// rather than risking duplicates.
func (ps *processorService) ProcessEvent(ctx context.Context, event squiggle.Event) error {
	gameID := event.ID()

	game, err := ps.getOrInsertGame(ctx, gameID)
	if err != nil {
		return err
	}

	merged := patchGame(*game, event)
	notification := EvaluateGame(&merged)

	// The score/marker update must survive even when nothing is due.
	if err := ps.games.Upsert(ctx, ps.db, &merged); err != nil {
		return fmt.Errorf("persist game %d: %w", gameID, err)
	}

	if notification == nil {
		return nil
	}

	sent, err := ps.alerts.Has(ctx, ps.db, gameID, notification.Kind)
	if err != nil {
		return fmt.Errorf("check alert ledger for game %d: %w", gameID, err)
	}
	if sent {
		ps.log.Debug("Notification already sent", "game_id", gameID, "kind", notification.Kind.String())
		return nil
	}

	if err := ps.alerts.Record(ctx, ps.db, gameID, notification.Kind); err != nil {
		return fmt.Errorf("record alert for game %d: %w", gameID, err)
	}

	if err := ps.notifier.Notify(ctx, &merged, notification); err != nil {
		return fmt.Errorf("notify for game %d: %w", gameID, err)
	}
	return nil
}

// getOrInsertGame returns the stored snapshot, backfilling on first sight:
// the game itself is fetched by id and its entire round is upserted too, so
// sibling games already exist locally by the time their own events arrive.
func (ps *processorService) getOrInsertGame(ctx context.Context, gameID uint32) (*types.Game, error) {
	game, err := ps.games.GetByID(ctx, ps.db, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game %d: %w", gameID, err)
	}
	if game != nil {
		return game, nil
	}

	game, err = ps.fetcher.FetchGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetch game %d: %w", gameID, err)
	}

	roundGames, err := ps.fetcher.FetchGames(ctx, game.Round, game.Year)
	if err != nil {
		return nil, fmt.Errorf("fetch round %d/%d: %w", game.Round, game.Year, err)
	}

	if err := ps.games.Upsert(ctx, ps.db, game); err != nil {
		return nil, fmt.Errorf("insert game %d: %w", gameID, err)
	}

	for _, sibling := range roundGames {
		if sibling.ID == gameID {
			continue
		}
		if err := ps.games.Upsert(ctx, ps.db, sibling); err != nil {
			return nil, fmt.Errorf("insert round game %d: %w", sibling.ID, err)
		}
	}

	ps.log.Info("Backfilled round on first sight of game",
		"game_id", gameID, "round", game.Round, "year", game.Year, "round_games", len(roundGames))

	return game, nil
}

// patchGame merges one event into a snapshot. The full GameEvent snapshot
// is intentionally ignored: its fields are redundant with the incremental
// variants. Complete never regresses, so late-arriving progress updates
// can't roll a game backwards.
func patchGame(game types.Game, event squiggle.Event) types.Game {
	switch ev := event.(type) {
	case squiggle.ScoreEvent:
		game.HomeScore = ev.Score.HomeScore
		game.AwayScore = ev.Score.AwayScore
		game.Complete = maxComplete(game.Complete, ev.Complete)
		game.Timestr = ev.Timestr
	case squiggle.TimeStrEvent:
		game.Timestr = ev.Timestr
	case squiggle.CompleteEvent:
		game.Complete = maxComplete(game.Complete, ev.Complete)
	case squiggle.WinnerEvent:
		winner := ev.Winner
		game.Winner = &winner
	case squiggle.GameEvent:
	}
	return game
}

func maxComplete(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
