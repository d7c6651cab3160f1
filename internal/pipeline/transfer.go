package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/schemas"
	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

// ImportSummary counts the records written by Import
type ImportSummary struct {
	Candidates int `json:"candidates"`
	Jobs       int `json:"jobs"`
	Matches    int `json:"matches"`
}

// Export returns every stored candidate, job and match
func (s *Service) Export(ctx context.Context) (types.Snapshot, error) {
	snap, err := store.Export(ctx, s.Store)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to export data: %w", err)
	}
	return snap, nil
}

// Import validates a JSON snapshot against the snapshot schema and upserts all of its
// records. Nothing is written when validation fails.
func (s *Service) Import(ctx context.Context, data []byte) (ImportSummary, error) {
	if err := schemas.ValidateSnapshot(data); err != nil {
		return ImportSummary{}, err
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ImportSummary{}, &InvalidRequestError{Message: fmt.Sprintf("failed to decode snapshot: %v", err)}
	}

	if err := s.Store.ImportSnapshot(ctx, snap); err != nil {
		return ImportSummary{}, fmt.Errorf("failed to import data: %w", err)
	}

	summary := ImportSummary{
		Candidates: len(snap.Candidates),
		Jobs:       len(snap.Jobs),
		Matches:    len(snap.Matches),
	}
	s.Logger.Info("data imported",
		zap.Int("candidates", summary.Candidates),
		zap.Int("jobs", summary.Jobs),
		zap.Int("matches", summary.Matches))
	return summary, nil
}
