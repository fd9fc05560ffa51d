package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository"
)

var puzzleColumns = []string{"puzzle_date", "answer", "category", "synonyms", "hints", "fact", "created_at"}

const puzzleUpsertSuffix = `ON CONFLICT (puzzle_date) DO UPDATE SET
answer = excluded.answer,
category = excluded.category,
synonyms = excluded.synonyms,
hints = excluded.hints,
fact = excluded.fact`

type puzzleRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewPuzzleRepository creates a new PuzzleRepository implementation
func NewPuzzleRepository(db *sql.DB, sb squirrel.StatementBuilderType) repository.PuzzleRepository {
	return &puzzleRepository{db: db, sb: sb}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPuzzle(row rowScanner) (*models.Puzzle, error) {
	var (
		p               models.Puzzle
		category        string
		synonyms, hints string
	)
	if err := row.Scan(&p.Date, &p.Answer, &category, &synonyms, &hints, &p.Fact, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Category = models.Category(category)
	var err error
	if p.Synonyms, err = decodeList(synonyms); err != nil {
		return nil, err
	}
	if p.Hints, err = decodeList(hints); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *puzzleRepository) Get(ctx context.Context, date string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("getting puzzle: date=%s", date)

	row := r.sb.Select(puzzleColumns...).
		From("daily_puzzles").
		Where(squirrel.Eq{"puzzle_date": date}).
		RunWith(r.db).
		QueryRowContext(ctx)

	p, err := scanPuzzle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("puzzle not found: date=%s", date)
			return nil, nil
		}
		log.Error("failed to get puzzle: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *puzzleRepository) ListRecent(ctx context.Context, limit int) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("listing recent puzzles: limit=%d", limit)

	if limit <= 0 {
		limit = 10
	}

	rows, err := r.sb.Select(puzzleColumns...).
		From("daily_puzzles").
		OrderBy("puzzle_date DESC").
		Limit(uint64(limit)).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			log.Error("failed to scan puzzle row: %v", err)
			return nil, err
		}
		puzzles = append(puzzles, *p)
	}
	log.Debug("found %d puzzles", len(puzzles))
	return puzzles, rows.Err()
}

func (r *puzzleRepository) upsertQuery(p models.Puzzle) (squirrel.InsertBuilder, error) {
	synonyms, err := encodeList(p.Synonyms)
	if err != nil {
		return squirrel.InsertBuilder{}, err
	}
	hints, err := encodeList(p.Hints)
	if err != nil {
		return squirrel.InsertBuilder{}, err
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return r.sb.Insert("daily_puzzles").
		Columns(puzzleColumns...).
		Values(p.Date, p.Answer, string(p.Category), synonyms, hints, p.Fact, createdAt.UTC()).
		Suffix(puzzleUpsertSuffix), nil
}

func (r *puzzleRepository) Upsert(ctx context.Context, p models.Puzzle) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("upserting puzzle: date=%s, category=%s", p.Date, p.Category)

	q, err := r.upsertQuery(p)
	if err != nil {
		log.Error("failed to encode puzzle: %v", err)
		return err
	}
	if _, err := q.RunWith(r.db).ExecContext(ctx); err != nil {
		log.Error("failed to upsert puzzle: %v", err)
		return err
	}
	return nil
}

func (r *puzzleRepository) UpsertBatch(ctx context.Context, puzzles []models.Puzzle) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("upserting %d puzzles", len(puzzles))

	if len(puzzles) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, p := range puzzles {
			q, err := r.upsertQuery(p)
			if err != nil {
				log.Error("failed to encode puzzle %s: %v", p.Date, err)
				return err
			}
			if _, err := q.RunWith(tx).ExecContext(ctx); err != nil {
				log.Error("failed to upsert puzzle %s: %v", p.Date, err)
				return err
			}
		}
		return nil
	})
}
