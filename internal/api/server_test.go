package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vytor/sense/internal/identity"
	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/metrics"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository/sqlrepo"
	"github.com/vytor/sense/internal/services"
	"github.com/vytor/sense/internal/session"
	"github.com/vytor/sense/internal/testutil"
	"github.com/vytor/sense/internal/testutil/mocks"
	"github.com/vytor/sense/internal/worker"
)

const today = "2026-10-17"

type ServerSuite struct {
	suite.Suite
	db      *sql.DB
	queue   *mocks.MockJobQueue
	server  *Server
	handler http.Handler
	now     time.Time
}

func (s *ServerSuite) SetupTest() {
	logger.SetDefault(logger.New(logger.WithOutput(io.Discard)))

	s.db = testutil.NewTestDB(s.T())
	sb := testutil.Builder()
	puzzles := sqlrepo.NewPuzzleRepository(s.db, sb)
	progress := sqlrepo.NewProgressRepository(s.db, sb)
	statsRepo := sqlrepo.NewStatsRepository(s.db, sb)

	require.NoError(s.T(), puzzles.Upsert(context.Background(), testutil.Puzzle(today)))

	s.now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }
	policy := session.NewPolicy(session.WithClock(clock))
	m := metrics.New()

	s.queue = new(mocks.MockJobQueue)
	s.server = &Server{
		GameService:   services.NewGameService(puzzles, progress, statsRepo, policy, m, "https://sense.example"),
		StatsService:  services.NewStatsService(statsRepo),
		PuzzleService: services.NewPuzzleService(puzzles),
		JobQueue:      s.queue,
		Metrics:       m,
		DB:            s.db,
		Now:           clock,
	}
	s.handler = s.server.Routes()
}

func (s *ServerSuite) TearDownTest() {
	s.queue.AssertExpectations(s.T())
	testutil.MustClose(s.T(), s.db)
}

func (s *ServerSuite) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) userCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == userCookieName {
			return c
		}
	}
	s.FailNow("response did not set the identity cookie")
	return nil
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body["error"]
}

func (s *ServerSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("OK", rec.Body.String())
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
}

func (s *ServerSuite) TestReady() {
	rec := s.do(http.MethodGet, "/ready", nil, nil)
	s.Equal(http.StatusOK, rec.Code)

	closed := testutil.NewTestDB(s.T())
	require.NoError(s.T(), closed.Close())
	s.server.DB = closed
	rec = s.do(http.MethodGet, "/ready", nil, nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *ServerSuite) TestGame_IssuesIdentityCookie() {
	rec := s.do(http.MethodGet, "/api/game", nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	cookie := s.userCookie(rec)
	s.True(identity.Valid(cookie.Value))
	s.True(cookie.HttpOnly)
	s.Equal(http.SameSiteLaxMode, cookie.SameSite)

	var view services.GameView
	s.decode(rec, &view)
	s.Equal(today, view.Date)
	s.Equal(models.CategorySmell, view.Category)
	s.Equal(session.StatusPlaying, view.Status)
	s.Equal(0, view.Attempts)
	s.Equal(session.AttemptBudget, view.Remaining)
	s.Nil(view.Reveal)

	// A valid cookie is kept as-is.
	rec = s.do(http.MethodGet, "/api/game", nil, cookie)
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Result().Cookies())
}

func (s *ServerSuite) TestGame_ReplacesMalformedCookie() {
	rec := s.do(http.MethodGet, "/api/game", nil, &http.Cookie{Name: userCookieName, Value: "not-a-user"})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotEqual("not-a-user", s.userCookie(rec).Value)
}

func (s *ServerSuite) TestGame_NoPuzzle() {
	s.now = s.now.AddDate(0, 0, 1)
	rec := s.do(http.MethodGet, "/api/game", nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(errorOf(s.T(), rec)["message"], "2026-10-18")
}

func (s *ServerSuite) TestGame_DateOverrideRequiresDevTools() {
	rec := s.do(http.MethodGet, "/api/game?date=2020-01-01", nil, nil)
	s.Equal(http.StatusOK, rec.Code)

	s.server.DevTools = true
	rec = s.do(http.MethodGet, "/api/game?date=2020-01-01", nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/game?date=yesterday", nil, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestSubmitGuess_PlayToWin() {
	cookie := s.userCookie(s.do(http.MethodGet, "/api/game", nil, nil))

	rec := s.do(http.MethodPost, "/api/game/guesses", guessRequest{Guess: "lavender"}, cookie)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var miss services.GuessOutcome
	s.decode(rec, &miss)
	s.NotEqual(models.TierCorrect, miss.Result.Tier)
	s.Equal(1, miss.Game.Attempts)
	s.Equal(session.StatusPlaying, miss.Game.Status)
	s.Nil(miss.Stats)

	rec = s.do(http.MethodGet, "/api/game/share", nil, cookie)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.now = s.now.Add(45 * time.Second)
	rec = s.do(http.MethodPost, "/api/game/guesses", guessRequest{Guess: " Cinnamon "}, cookie)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var win services.GuessOutcome
	s.decode(rec, &win)
	s.Equal(models.TierCorrect, win.Result.Tier)
	s.Equal(session.StatusWon, win.Game.Status)
	s.Require().NotNil(win.Game.Reveal)
	s.Equal("cinnamon", win.Game.Reveal.Answer)
	s.Equal(45, win.Game.TimeSpentSeconds)
	s.Require().NotNil(win.Stats)
	s.Equal(1, win.Stats.TotalWins)
	s.Equal(1, win.Stats.CurrentStreak)

	rec = s.do(http.MethodGet, "/api/game/share", nil, cookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(strings.HasPrefix(rec.Body.String(), "SENSE "+today+" 2/6"), rec.Body.String())
	s.Contains(rec.Body.String(), "https://sense.example")

	rec = s.do(http.MethodGet, "/api/stats", nil, cookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	var st services.StatsView
	s.decode(rec, &st)
	s.Equal(1, st.TotalPlayed)
	s.Equal(45, st.TotalTimeSpentSeconds)
}

func (s *ServerSuite) TestSubmitGuess_Rejections() {
	cookie := s.userCookie(s.do(http.MethodGet, "/api/game", nil, nil))

	rec := s.do(http.MethodPost, "/api/game/guesses", guessRequest{Guess: "   "}, cookie)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("empty_guess", errorOf(s.T(), rec)["reason"])

	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/game/guesses", guessRequest{Guess: "pepper"}, cookie).Code)
	rec = s.do(http.MethodPost, "/api/game/guesses", guessRequest{Guess: "PEPPER"}, cookie)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("duplicate_guess", errorOf(s.T(), rec)["reason"])
}

func (s *ServerSuite) TestSubmitGuess_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/game/guesses", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("BAD_REQUEST", errorOf(s.T(), rec)["code"])
}

func (s *ServerSuite) TestStats_NoGames() {
	rec := s.do(http.MethodGet, "/api/stats", nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var st services.StatsView
	s.decode(rec, &st)
	s.Equal(0, st.TotalPlayed)
	s.Equal(s.userCookie(rec).Value, st.UserID)
}

func (s *ServerSuite) TestMetrics() {
	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "go_goroutines")
}

func (s *ServerSuite) TestDevRoutes_HiddenByDefault() {
	rec := s.do(http.MethodGet, "/dev/puzzles", nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodDelete, "/dev/progress", nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestDevRoutes_RecentPuzzles() {
	s.server.DevTools = true
	rec := s.do(http.MethodGet, "/dev/puzzles", nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var puzzles []models.Puzzle
	s.decode(rec, &puzzles)
	s.Require().Len(puzzles, 1)
	s.Equal(today, puzzles[0].Date)
}

func (s *ServerSuite) TestDevRoutes_Import() {
	s.server.DevTools = true
	batch := []models.Puzzle{testutil.Puzzle("2026-10-18")}

	s.queue.On("EnqueueImport", "dev", mock.Anything).Return(nil).Once()
	rec := s.do(http.MethodPost, "/dev/puzzles/import", batch, nil)
	s.Equal(http.StatusAccepted, rec.Code)

	s.queue.On("EnqueueImport", "dev", mock.Anything).Return(worker.ErrQueueFull).Once()
	rec = s.do(http.MethodPost, "/dev/puzzles/import", batch, nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("UNAVAILABLE", errorOf(s.T(), rec)["code"])

	rec = s.do(http.MethodPost, "/dev/puzzles/import", []models.Puzzle{}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestDevRoutes_RefreshFeed() {
	s.server.DevTools = true
	rec := s.do(http.MethodPost, "/dev/puzzles/refresh", nil, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.server.FeedURL = "https://feed.example/puzzles.json"
	s.queue.On("EnqueueFeed", "https://feed.example/puzzles.json").Return(nil).Once()
	rec = s.do(http.MethodPost, "/dev/puzzles/refresh", nil, nil)
	s.Equal(http.StatusAccepted, rec.Code)
}

func (s *ServerSuite) TestDevRoutes_ResetProgress() {
	s.server.DevTools = true
	cookie := s.userCookie(s.do(http.MethodGet, "/api/game", nil, nil))
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/game/guesses", guessRequest{Guess: "pepper"}, cookie).Code)

	rec := s.do(http.MethodDelete, "/dev/progress", nil, cookie)
	s.Equal(http.StatusNoContent, rec.Code)

	var view services.GameView
	s.decode(s.do(http.MethodGet, "/api/game", nil, cookie), &view)
	s.Equal(0, view.Attempts)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestRecoveryMiddleware(t *testing.T) {
	logger.SetDefault(logger.New(logger.WithOutput(io.Discard)))
	h := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorOf(t, rec)["code"])
}
