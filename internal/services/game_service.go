package services

import (
	"context"
	"fmt"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/metrics"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository"
	"github.com/vytor/sense/internal/session"
	"github.com/vytor/sense/internal/share"
	"github.com/vytor/sense/internal/stats"
)

// GameService runs a player's daily game: loading, guessing and sharing.
type GameService interface {
	LoadGame(ctx context.Context, userID, date string) (*GameView, error)
	SubmitGuess(ctx context.Context, userID, date, guess string) (*GuessOutcome, error)
	ShareText(ctx context.Context, userID, date string) (string, error)
	ResetProgress(ctx context.Context, userID, date string) error
}

type gameService struct {
	puzzleRepo   repository.PuzzleRepository
	progressRepo repository.ProgressRepository
	statsRepo    repository.StatsRepository
	policy       *session.Policy
	gate         *session.Gate
	metrics      *metrics.Metrics
	shareURL     string
}

// NewGameService creates a new GameService. m may be nil.
func NewGameService(
	puzzleRepo repository.PuzzleRepository,
	progressRepo repository.ProgressRepository,
	statsRepo repository.StatsRepository,
	policy *session.Policy,
	m *metrics.Metrics,
	shareURL string,
) GameService {
	if policy == nil {
		policy = session.NewPolicy()
	}
	return &gameService{
		puzzleRepo:   puzzleRepo,
		progressRepo: progressRepo,
		statsRepo:    statsRepo,
		policy:       policy,
		gate:         session.NewGate(),
		metrics:      m,
		shareURL:     shareURL,
	}
}

func (s *gameService) puzzle(ctx context.Context, date string) (*models.Puzzle, error) {
	p, err := s.puzzleRepo.Get(ctx, date)
	if err != nil {
		logger.FromContext(ctx).Error("failed to fetch puzzle: date=%s: %v", date, err)
		s.metrics.ObserveStoreFailure("puzzle_fetch")
		return nil, errors.NewStoreError("puzzle_fetch", err)
	}
	if p == nil {
		notFound := errors.NewNotFoundError("puzzle", date)
		notFound.Message = fmt.Sprintf("No puzzle available for %s yet. Check back soon!", date)
		return nil, notFound
	}
	return p, nil
}

// load fetches the puzzle and rebuilds the session from its snapshot.
func (s *gameService) load(ctx context.Context, userID, date string) (*models.Puzzle, session.State, bool, error) {
	puzzle, err := s.puzzle(ctx, date)
	if err != nil {
		return nil, session.State{}, false, err
	}

	persisted, err := s.progressRepo.Get(ctx, userID, date)
	if err != nil {
		logger.FromContext(ctx).Error("failed to fetch progress: user_id=%s, date=%s: %v", userID, date, err)
		s.metrics.ObserveStoreFailure("progress_fetch")
		return nil, session.State{}, false, errors.NewStoreError("progress_fetch", err)
	}

	state, backfilled := s.policy.LoadOrInit(userID, date, *puzzle, persisted)
	return puzzle, state, backfilled, nil
}

func (s *gameService) LoadGame(ctx context.Context, userID, date string) (*GameView, error) {
	log := logger.FromContext(ctx).WithPrefix("game_service")
	log.Debug("loading game: user_id=%s, date=%s", userID, date)

	puzzle, state, backfilled, err := s.load(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if backfilled {
		log.Info("backfilled feedback for %d stored guesses", len(state.Guesses))
		if err := s.progressRepo.Upsert(ctx, state.Progress()); err != nil {
			log.Warn("failed to persist backfilled feedback: %v", err)
			s.metrics.ObserveStoreFailure("progress_upsert")
		}
	}

	if state.Terminal() {
		s.reconcileStats(ctx, state)
	}

	view := buildView(*puzzle, state)
	return &view, nil
}

// reconcileStats folds a finished game whose stats write failed earlier.
// Only dates after the last folded one are considered, so reopening an old
// game never counts it twice.
func (s *gameService) reconcileStats(ctx context.Context, state session.State) {
	log := logger.FromContext(ctx).WithPrefix("game_service")

	existing, err := s.statsRepo.Get(ctx, state.UserID)
	if err != nil {
		log.Warn("skipping stats reconciliation: %v", err)
		return
	}
	if existing != nil && existing.LastPuzzleDate >= state.PuzzleDate {
		return
	}

	log.Info("folding unrecorded result: date=%s", state.PuzzleDate)
	if _, err := s.foldStats(ctx, existing, outcomeOf(state)); err != nil {
		log.Warn("stats reconciliation failed: %v", err)
	}
}

func outcomeOf(state session.State) stats.Outcome {
	o := stats.Outcome{
		UserID:           state.UserID,
		PuzzleDate:       state.PuzzleDate,
		Won:              state.Won(),
		Attempts:         state.Attempts(),
		TimeSpentSeconds: float64(state.TimeSpentSeconds),
	}
	switch {
	case state.CompletedAt != nil:
		o.PlayedAt = *state.CompletedAt
	case state.LastGuessAt != nil:
		o.PlayedAt = *state.LastGuessAt
	}
	return o
}

func (s *gameService) foldStats(ctx context.Context, existing *models.UserStats, o stats.Outcome) (*models.UserStats, error) {
	next := stats.ApplyOutcome(existing, o)
	if err := s.statsRepo.Upsert(ctx, next); err != nil {
		s.metrics.ObserveStoreFailure("stats_upsert")
		return nil, errors.NewStoreError("stats_upsert", err)
	}
	return &next, nil
}

func (s *gameService) SubmitGuess(ctx context.Context, userID, date, guess string) (*GuessOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("game_service")
	log.Debug("submitting guess: user_id=%s, date=%s", userID, date)

	release, ok := s.gate.TryEnter(session.Key(userID, date))
	if !ok {
		log.Warn("guess rejected, previous submission still in flight")
		s.metrics.ObserveRejection(errors.ReasonInFlight)
		return nil, errors.NewConflictError("Hang on, we're still scoring your last guess.")
	}
	defer release()

	puzzle, state, _, err := s.load(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	sub, err := s.policy.Submit(state, *puzzle, guess)
	if err != nil {
		if appErr, ok := errors.As(err); ok {
			s.metrics.ObserveRejection(appErr.Reason)
		}
		log.Debug("guess rejected: %v", err)
		return nil, err
	}

	if err := s.progressRepo.Upsert(ctx, sub.State.Progress()); err != nil {
		log.Error("failed to save progress: %v", err)
		s.metrics.ObserveStoreFailure("progress_upsert")
		return nil, errors.NewStoreError("progress_upsert", err)
	}
	s.metrics.ObserveGuess(string(sub.Result.Tier), string(sub.Result.MatchKind))

	out := &GuessOutcome{
		Result: feedbackFor(sub.Result),
		Game:   buildView(*puzzle, sub.State),
	}

	if sub.Completion == nil {
		return out, nil
	}

	existing, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to fetch stats: %v", err)
		s.metrics.ObserveStoreFailure("stats_fetch")
		return nil, errors.NewStoreError("stats_fetch", err)
	}
	updated, err := s.foldStats(ctx, existing, *sub.Completion)
	if err != nil {
		log.Error("failed to save stats: %v", err)
		return nil, err
	}

	outcome := models.OutcomeLost
	if sub.Completion.Won {
		outcome = models.OutcomeWon
	}
	s.metrics.ObserveCompletion(string(outcome))
	log.Info("game finished: outcome=%s, attempts=%d", outcome, sub.Completion.Attempts)

	out.Stats = updated
	return out, nil
}

func (s *gameService) ShareText(ctx context.Context, userID, date string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("game_service")
	log.Debug("building share text: user_id=%s, date=%s", userID, date)

	_, state, _, err := s.load(ctx, userID, date)
	if err != nil {
		return "", err
	}
	if !state.Terminal() {
		return "", errors.NewValidationError("game", "finish today's puzzle before sharing")
	}

	return share.Text(share.Summary{
		Date:        date,
		Attempts:    state.Attempts(),
		MaxAttempts: session.AttemptBudget,
		Guesses:     state.Guesses,
		Won:         state.Won(),
		URL:         s.shareURL,
	}), nil
}

func (s *gameService) ResetProgress(ctx context.Context, userID, date string) error {
	log := logger.FromContext(ctx).WithPrefix("game_service")
	log.Info("resetting progress: user_id=%s, date=%s", userID, date)

	if err := s.progressRepo.Delete(ctx, userID, date); err != nil {
		log.Error("failed to reset progress: %v", err)
		s.metrics.ObserveStoreFailure("progress_delete")
		return errors.NewStoreError("progress_delete", err)
	}
	return nil
}

func buildView(p models.Puzzle, state session.State) GameView {
	guesses := make([]GuessFeedback, len(state.Guesses))
	for i, g := range state.Guesses {
		guesses[i] = feedbackFor(g)
	}

	view := GameView{
		Date:             p.Date,
		Category:         p.Category,
		Guesses:          guesses,
		Attempts:         state.Attempts(),
		MaxAttempts:      session.AttemptBudget,
		Remaining:        state.Remaining(),
		Status:           state.Status,
		Hint:             state.CurrentHint(p),
		TimeSpentSeconds: state.TimeSpentSeconds,
		TimeSpent:        stats.FormatDuration(state.TimeSpentSeconds),
	}
	if state.Terminal() {
		view.Reveal = &Reveal{Answer: p.Answer, Fact: p.Fact}
	}
	return view
}
