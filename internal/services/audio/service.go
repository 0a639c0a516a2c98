// Package audio exposes the sequencing entry point request handlers call.
package audio

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/internal/common"
	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
	"github.com/vendiq/pickrun/internal/sequence"
)

type Service struct {
	runs   repository.RunRepository
	logger *slog.Logger
}

func NewService(runs repository.RunRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{runs: runs, logger: logger}
}

// Sequence returns the ordered audio commands for a run's pending entries.
// Sequencing unchanged data twice yields identical output; the ordering
// lives entirely in the pure sequence package.
func (s *Service) Sequence(ctx context.Context, runID uuid.UUID) ([]*entity.AudioCommand, error) {
	if _, err := s.runs.GetRun(ctx, runID); err != nil {
		s.logger.Error("run not found for sequencing", "run_id", runID, "error", err)
		return nil, common.NotFoundError("run not found")
	}
	entries, err := s.runs.ListPending(ctx, runID)
	if err != nil {
		return nil, common.InternalError("list pending entries failed")
	}
	commands := sequence.Commands(entries)
	s.logger.Info("sequenced run", "run_id", runID, "pending", len(entries), "commands", len(commands))
	return commands, nil
}
