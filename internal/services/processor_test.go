package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/squiggle"
	"github.com/footyalerts/footy-alerts/internal/types"
)

type fakeGameRepo struct {
	games   map[uint32]types.Game
	upserts int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[uint32]types.Game)}
}

func (f *fakeGameRepo) GetByID(ctx context.Context, tx *gorm.DB, gameID uint32) (*types.Game, error) {
	game, ok := f.games[gameID]
	if !ok {
		return nil, nil
	}
	return &game, nil
}

func (f *fakeGameRepo) Upsert(ctx context.Context, tx *gorm.DB, game *types.Game) error {
	f.upserts++
	f.games[game.ID] = *game
	return nil
}

func (f *fakeGameRepo) CurrentRound(ctx context.Context, tx *gorm.DB) ([]*types.Game, error) {
	return nil, nil
}

type fakeAlertRepo struct {
	recorded map[string]bool
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{recorded: make(map[string]bool)}
}

func alertKey(gameID uint32, kind types.NotificationKind) string {
	return fmt.Sprintf("%d/%d", gameID, kind)
}

func (f *fakeAlertRepo) Has(ctx context.Context, tx *gorm.DB, gameID uint32, kind types.NotificationKind) (bool, error) {
	return f.recorded[alertKey(gameID, kind)], nil
}

func (f *fakeAlertRepo) Record(ctx context.Context, tx *gorm.DB, gameID uint32, kind types.NotificationKind) error {
	f.recorded[alertKey(gameID, kind)] = true
	return nil
}

type fakeFetcher struct {
	game       *types.Game
	roundGames []*types.Game
	gameCalls  int
	roundCalls int
	err        error
}

func (f *fakeFetcher) FetchGame(ctx context.Context, gameID uint32) (*types.Game, error) {
	f.gameCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.game == nil || f.game.ID != gameID {
		return nil, squiggle.ErrMissingGame
	}
	game := *f.game
	return &game, nil
}

func (f *fakeFetcher) FetchGames(ctx context.Context, round, year uint16) ([]*types.Game, error) {
	f.roundCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.roundGames, nil
}

type fakeNotifier struct {
	notifications []Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, game *types.Game, notification *Notification) error {
	f.notifications = append(f.notifications, *notification)
	return nil
}

func testProcessor(t *testing.T, games *fakeGameRepo, alerts *fakeAlertRepo, fetcher *fakeFetcher, notifier *fakeNotifier) ProcessorService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewProcessorService(nil, log, games, alerts, fetcher, notifier)
}

func storedGame() types.Game {
	return types.Game{
		ID:        35740,
		Round:     5,
		Year:      2024,
		Complete:  75,
		HomeTeam:  types.TeamGeelong,
		AwayTeam:  types.TeamStKilda,
		HomeScore: 60,
		AwayScore: 50,
		Timestr:   "Q4 10:00",
	}
}

func TestProcessEventMergesScoreEvent(t *testing.T) {
	games := newFakeGameRepo()
	games.games[35740] = storedGame()
	notifier := &fakeNotifier{}
	processor := testProcessor(t, games, newFakeAlertRepo(), &fakeFetcher{}, notifier)

	err := processor.ProcessEvent(context.Background(), squiggle.ScoreEvent{
		GameID:   35740,
		Type:     "goal",
		Complete: 80,
		Score:    squiggle.Score{HomeScore: 66, AwayScore: 50},
		Timestr:  "Q4 5:00",
	})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}

	merged := games.games[35740]
	if merged.HomeScore != 66 || merged.AwayScore != 50 {
		t.Fatalf("scores: want=66/50 got=%d/%d", merged.HomeScore, merged.AwayScore)
	}
	if merged.Complete != 80 {
		t.Fatalf("complete: want=80 got=%d", merged.Complete)
	}
	if merged.Timestr != "Q4 5:00" {
		t.Fatalf("timestr: want=%q got=%q", "Q4 5:00", merged.Timestr)
	}
	if len(notifier.notifications) != 0 {
		t.Fatalf("notifications: want=0 got=%d", len(notifier.notifications))
	}
}

// The snapshot must be persisted even when no notification is due.
func TestProcessEventPersistsWithoutNotification(t *testing.T) {
	games := newFakeGameRepo()
	games.games[35740] = storedGame()
	processor := testProcessor(t, games, newFakeAlertRepo(), &fakeFetcher{}, &fakeNotifier{})

	err := processor.ProcessEvent(context.Background(), squiggle.TimeStrEvent{GameID: 35740, Timestr: "Q4 2:00"})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	if games.upserts != 1 {
		t.Fatalf("upserts: want=1 got=%d", games.upserts)
	}
	if games.games[35740].Timestr != "Q4 2:00" {
		t.Fatalf("timestr: want=%q got=%q", "Q4 2:00", games.games[35740].Timestr)
	}
}

func TestProcessEventCompleteNeverRegresses(t *testing.T) {
	games := newFakeGameRepo()
	game := storedGame()
	game.Complete = 80
	games.games[35740] = game
	processor := testProcessor(t, games, newFakeAlertRepo(), &fakeFetcher{}, &fakeNotifier{})

	err := processor.ProcessEvent(context.Background(), squiggle.CompleteEvent{GameID: 35740, Complete: 70})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	if got := games.games[35740].Complete; got != 80 {
		t.Fatalf("complete: want=80 got=%d", got)
	}
}

func TestProcessEventIgnoresGameEvent(t *testing.T) {
	games := newFakeGameRepo()
	games.games[35740] = storedGame()
	processor := testProcessor(t, games, newFakeAlertRepo(), &fakeFetcher{}, &fakeNotifier{})

	err := processor.ProcessEvent(context.Background(), squiggle.GameEvent{
		GameID:    35740,
		HomeScore: 999,
		AwayScore: 999,
		Complete:  100,
		Timestr:   types.TimeStrEndOfGame,
	})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	merged := games.games[35740]
	if merged.HomeScore != 60 || merged.Complete != 75 {
		t.Fatalf("game should be unchanged, got scores=%d/%d complete=%d",
			merged.HomeScore, merged.AwayScore, merged.Complete)
	}
}

func TestProcessEventSetsWinner(t *testing.T) {
	games := newFakeGameRepo()
	games.games[35740] = storedGame()
	processor := testProcessor(t, games, newFakeAlertRepo(), &fakeFetcher{}, &fakeNotifier{})

	err := processor.ProcessEvent(context.Background(), squiggle.WinnerEvent{GameID: 35740, Winner: types.TeamGeelong})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	winner := games.games[35740].Winner
	if winner == nil || *winner != types.TeamGeelong {
		t.Fatalf("winner: want=Geelong got=%v", winner)
	}
}

// First sight of a game backfills its entire round, so all N+1 fixtures
// exist locally afterwards.
func TestProcessEventBackfillsRoundOnFirstSight(t *testing.T) {
	games := newFakeGameRepo()
	target := storedGame()
	fetcher := &fakeFetcher{
		game: &target,
		roundGames: []*types.Game{
			{ID: 35740, Round: 5, Year: 2024, HomeTeam: types.TeamGeelong, AwayTeam: types.TeamStKilda},
			{ID: 35741, Round: 5, Year: 2024, HomeTeam: types.TeamCarlton, AwayTeam: types.TeamEssendon},
			{ID: 35742, Round: 5, Year: 2024, HomeTeam: types.TeamSydney, AwayTeam: types.TeamRichmond},
		},
	}
	processor := testProcessor(t, games, newFakeAlertRepo(), fetcher, &fakeNotifier{})

	err := processor.ProcessEvent(context.Background(), squiggle.CompleteEvent{GameID: 35740, Complete: 80})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	if len(games.games) != 3 {
		t.Fatalf("stored games: want=3 got=%d", len(games.games))
	}
	if fetcher.gameCalls != 1 || fetcher.roundCalls != 1 {
		t.Fatalf("fetch calls: want=1/1 got=%d/%d", fetcher.gameCalls, fetcher.roundCalls)
	}
	// The sibling snapshots mustn't clobber the event's own game.
	if got := games.games[35740].Complete; got != 80 {
		t.Fatalf("complete: want=80 got=%d", got)
	}
}

func TestProcessEventNoBackfillForKnownGame(t *testing.T) {
	games := newFakeGameRepo()
	games.games[35740] = storedGame()
	fetcher := &fakeFetcher{}
	processor := testProcessor(t, games, newFakeAlertRepo(), fetcher, &fakeNotifier{})

	err := processor.ProcessEvent(context.Background(), squiggle.CompleteEvent{GameID: 35740, Complete: 80})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	if fetcher.gameCalls != 0 || fetcher.roundCalls != 0 {
		t.Fatalf("fetch calls: want=0/0 got=%d/%d", fetcher.gameCalls, fetcher.roundCalls)
	}
}

func TestProcessEventNotifiesOnceThenDedupes(t *testing.T) {
	games := newFakeGameRepo()
	games.games[35740] = storedGame()
	alerts := newFakeAlertRepo()
	notifier := &fakeNotifier{}
	processor := testProcessor(t, games, alerts, &fakeFetcher{}, notifier)

	event := squiggle.TimeStrEvent{GameID: 35740, Timestr: types.TimeStrEndOfGame}
	if err := processor.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("first ProcessEvent: %v", err)
	}
	if len(notifier.notifications) != 1 {
		t.Fatalf("notifications after first event: want=1 got=%d", len(notifier.notifications))
	}
	if notifier.notifications[0].Kind != types.NotificationEndOfGame {
		t.Fatalf("kind: want=EndOfGame got=%s", notifier.notifications[0].Kind)
	}
	if !alerts.recorded[alertKey(35740, types.NotificationEndOfGame)] {
		t.Fatalf("ledger entry should be recorded")
	}

	// Replaying the same event must not fan out again.
	if err := processor.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("second ProcessEvent: %v", err)
	}
	if len(notifier.notifications) != 1 {
		t.Fatalf("notifications after replay: want=1 got=%d", len(notifier.notifications))
	}
}

func TestProcessEventDifferentKindsBothNotify(t *testing.T) {
	games := newFakeGameRepo()
	games.games[35740] = storedGame()
	notifier := &fakeNotifier{}
	processor := testProcessor(t, games, newFakeAlertRepo(), &fakeFetcher{}, notifier)

	events := []squiggle.Event{
		squiggle.TimeStrEvent{GameID: 35740, Timestr: types.TimeStrEndOfThirdQuarter},
		squiggle.TimeStrEvent{GameID: 35740, Timestr: types.TimeStrEndOfGame},
	}
	for _, event := range events {
		if err := processor.ProcessEvent(context.Background(), event); err != nil {
			t.Fatalf("ProcessEvent: %v", err)
		}
	}
	if len(notifier.notifications) != 2 {
		t.Fatalf("notifications: want=2 got=%d", len(notifier.notifications))
	}
}

func TestProcessEventFetchFailureAborts(t *testing.T) {
	games := newFakeGameRepo()
	fetchErr := errors.New("squiggle down")
	processor := testProcessor(t, games, newFakeAlertRepo(), &fakeFetcher{err: fetchErr}, &fakeNotifier{})

	err := processor.ProcessEvent(context.Background(), squiggle.CompleteEvent{GameID: 1, Complete: 50})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("error: want=%v got=%v", fetchErr, err)
	}
	if len(games.games) != 0 {
		t.Fatalf("nothing should be stored after a fetch failure")
	}
}
