package programs

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Program struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	DurationWeeks int       `json:"duration_weeks"`
	DeloadWeek    bool      `json:"deload_week"`
	CreatedAt     time.Time `json:"created_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns all programs, newest first.
func (r *Repo) List(ctx context.Context) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.programs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, duration_weeks, deload_week, created_at FROM programs ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("programs [query]: %w", err)
	}
	defer rows.Close()

	programs := []Program{}
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Name, &p.DurationWeeks, &p.DeloadWeek, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("programs [rows scan]: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("programs [rows error]: %w", err)
	}

	return programs, nil
}

func (r *Repo) Add(ctx context.Context, program Program) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.programs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if program.CreatedAt.IsZero() {
		program.CreatedAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO programs (name, duration_weeks, deload_week, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		program.Name, program.DurationWeeks, program.DeloadWeek, program.CreatedAt,
	).Scan(&program.ID)
	if err != nil {
		return nil, fmt.Errorf("insert program: %w", err)
	}

	span.SetAttributes(attribute.Int("program.id", program.ID))
	return &program, nil
}
