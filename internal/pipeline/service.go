// Package pipeline orchestrates resume ingestion, matching and dictionary maintenance
// on top of a store.
package pipeline

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/matching"
	"github.com/mutlukurt/hirelens/internal/metrics"
	"github.com/mutlukurt/hirelens/internal/ranking"
	"github.com/mutlukurt/hirelens/internal/skills"
	"github.com/mutlukurt/hirelens/internal/store"
	"github.com/mutlukurt/hirelens/internal/types"
)

// Progress steps reported while ingesting a resume
const (
	StepExtract   = "extract"
	StepCandidate = "candidate"
	StepMatch     = "match"
)

// ProgressEvent represents a progress update during ingestion
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when ingestion progress occurs
type ProgressCallback func(event ProgressEvent)

// InvalidRequestError represents a request rejected before any record was touched
type InvalidRequestError struct {
	Field   string
	Message string
}

func (e *InvalidRequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}

// Service ties the store, the skill dictionary and the match builder together.
// The dictionary is shared with the builder's scorer and the parser, so an edit is
// visible to the next score.
type Service struct {
	Store      store.Store
	Dictionary *skills.Dictionary
	Builder    *matching.Builder
	Parser     *extraction.Parser
	Logger     *zap.Logger
	Clock      func() time.Time
	OnProgress ProgressCallback

	// dictMu serializes dictionary edits with their persistence
	dictMu sync.Mutex
}

// NewService wires a service around one shared dictionary
func NewService(st store.Store, dict *skills.Dictionary, maxUploadBytes int64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Store:      st,
		Dictionary: dict,
		Builder:    matching.NewBuilder(ranking.NewScorer(dict)),
		Parser:     extraction.NewParser(dict, maxUploadBytes),
		Logger:     logger,
		Clock:      time.Now,
	}
}

func (s *Service) emitProgress(step, message string, content any) {
	if s.OnProgress != nil {
		s.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

func observeMatch(m types.MatchResult) {
	metrics.MatchesCreatedTotal.Inc()
	metrics.MatchScore.Observe(float64(m.Score))
}

// AverageScore returns the rounded mean score of matches, 0 when there are none
func AverageScore(matches []types.MatchResult) int {
	if len(matches) == 0 {
		return 0
	}
	sum := 0
	for _, m := range matches {
		sum += m.Score
	}
	return int(math.Round(float64(sum) / float64(len(matches))))
}
