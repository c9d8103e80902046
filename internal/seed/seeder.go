// Package seed loads the bundled fixture data and records which fixture
// steps have run in a seeder_meta table, so up and down are repeatable.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Step struct {
	Name string
	Up   func(ctx context.Context) error
	Down func(ctx context.Context) error
}

type Seeder struct {
	db     *sqlx.DB
	steps  []Step
	logger logger.ZapLogger
	now    func() time.Time
}

func NewSeeder(db *sqlx.DB, steps []Step, log logger.ZapLogger) *Seeder {
	return &Seeder{
		db:     db,
		steps:  steps,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Seeder) ensureMeta(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS seeder_meta (
        name TEXT PRIMARY KEY,
        executed_at TIMESTAMPTZ NOT NULL
    )`)
	return err
}

func (s *Seeder) executed(ctx context.Context) (map[string]bool, error) {
	if err := s.ensureMeta(ctx); err != nil {
		return nil, err
	}
	var names []string
	if err := s.db.SelectContext(ctx, &names, `SELECT name FROM seeder_meta ORDER BY name`); err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(names))
	for _, n := range names {
		done[n] = true
	}
	return done, nil
}

// Up runs every pending step in order and returns the names it ran.
func (s *Seeder) Up(ctx context.Context) ([]string, error) {
	done, err := s.executed(ctx)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, step := range s.steps {
		if done[step.Name] {
			continue
		}
		if err := step.Up(ctx); err != nil {
			return ran, fmt.Errorf("seed %s: %w", step.Name, err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO seeder_meta (name, executed_at) VALUES ($1, $2)`, step.Name, s.now()); err != nil {
			return ran, fmt.Errorf("record %s: %w", step.Name, err)
		}
		s.logger.Info("Seeded", zap.String("step", step.Name))
		ran = append(ran, step.Name)
	}
	return ran, nil
}

// Down reverts executed steps in reverse order.
func (s *Seeder) Down(ctx context.Context) ([]string, error) {
	done, err := s.executed(ctx)
	if err != nil {
		return nil, err
	}

	var reverted []string
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if !done[step.Name] {
			continue
		}
		if err := step.Down(ctx); err != nil {
			return reverted, fmt.Errorf("unseed %s: %w", step.Name, err)
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM seeder_meta WHERE name = $1`, step.Name); err != nil {
			return reverted, fmt.Errorf("unrecord %s: %w", step.Name, err)
		}
		s.logger.Info("Unseeded", zap.String("step", step.Name))
		reverted = append(reverted, step.Name)
	}
	return reverted, nil
}

func (s *Seeder) Status(ctx context.Context) (executed, pending []string, err error) {
	done, err := s.executed(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, step := range s.steps {
		if done[step.Name] {
			executed = append(executed, step.Name)
		} else {
			pending = append(pending, step.Name)
		}
	}
	return executed, pending, nil
}
