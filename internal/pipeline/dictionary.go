package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mutlukurt/hirelens/internal/metrics"
	"github.com/mutlukurt/hirelens/internal/skills"
	"github.com/mutlukurt/hirelens/internal/store"
)

// LoadDictionary replaces the in-memory dictionary with the one saved in the store.
// When nothing has been saved yet the current entries stay in place.
func (s *Service) LoadDictionary(ctx context.Context) error {
	s.dictMu.Lock()
	defer s.dictMu.Unlock()

	entries, err := s.Store.GetDictionary(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s.Logger.Debug("no saved dictionary, keeping current entries", zap.Int("skills", s.Dictionary.Len()))
		metrics.DictionarySkills.Set(float64(s.Dictionary.Len()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	s.Dictionary.Replace(entries)
	metrics.DictionarySkills.Set(float64(s.Dictionary.Len()))
	s.Logger.Info("dictionary loaded", zap.Int("skills", s.Dictionary.Len()))
	return nil
}

// AddSkill registers a canonical skill with optional synonyms
func (s *Service) AddSkill(ctx context.Context, canonical string, synonyms []string) error {
	for _, syn := range synonyms {
		if strings.TrimSpace(syn) == "" {
			return &skills.ValidationError{Field: "synonyms", Message: "synonyms must not be empty"}
		}
	}
	return s.editDictionary(ctx, func(d *skills.Dictionary) error {
		if err := d.AddSkill(canonical); err != nil {
			return err
		}
		for _, syn := range synonyms {
			if err := d.AddSkillSynonym(canonical, syn); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveSkill deletes a canonical skill and all of its synonyms
func (s *Service) RemoveSkill(ctx context.Context, canonical string) error {
	return s.editDictionary(ctx, func(d *skills.Dictionary) error {
		return d.RemoveSkill(canonical)
	})
}

// AddSynonym attaches synonym to canonical
func (s *Service) AddSynonym(ctx context.Context, canonical, synonym string) error {
	return s.editDictionary(ctx, func(d *skills.Dictionary) error {
		return d.AddSkillSynonym(canonical, synonym)
	})
}

// RemoveSynonym detaches synonym from canonical
func (s *Service) RemoveSynonym(ctx context.Context, canonical, synonym string) error {
	return s.editDictionary(ctx, func(d *skills.Dictionary) error {
		return d.RemoveSynonym(canonical, synonym)
	})
}

// ResetDictionary restores the built-in dictionary
func (s *Service) ResetDictionary(ctx context.Context) error {
	return s.editDictionary(ctx, func(d *skills.Dictionary) error {
		d.Replace(skills.DefaultEntries())
		return nil
	})
}

// editDictionary applies edit to a copy of the dictionary, saves the copy and only then
// swaps it in, so a rejected edit or a failed save leaves the live dictionary untouched
// and readers never see a compound edit half-applied.
func (s *Service) editDictionary(ctx context.Context, edit func(d *skills.Dictionary) error) error {
	s.dictMu.Lock()
	defer s.dictMu.Unlock()

	draft := skills.New(s.Dictionary.Entries())
	if err := edit(draft); err != nil {
		return err
	}

	entries := draft.Entries()
	if err := s.Store.PutDictionary(ctx, entries); err != nil {
		return fmt.Errorf("failed to save dictionary: %w", err)
	}

	s.Dictionary.Replace(entries)
	metrics.DictionarySkills.Set(float64(s.Dictionary.Len()))
	return nil
}
