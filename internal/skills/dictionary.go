// Package skills provides the skill dictionary and the normalizer that resolves skill
// names, synonyms and free-text mentions to canonical skills.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed default_skills.json
var defaultSkillsJSON []byte

// Dictionary maps canonical skills to their synonyms and keeps a reverse index from
// every synonym (and every canonical) to its canonical skill.
//
// Both maps are guarded by one lock: readers hold the read lock for a whole lookup and
// writers hold the write lock for a whole edit, so an edit is never observed half-applied.
type Dictionary struct {
	mu      sync.RWMutex
	entries map[string][]string
	reverse map[string]string
}

// New creates a dictionary from canonical -> synonyms entries.
// Keys and synonyms are lower-cased and trimmed; empty values are dropped.
func New(entries map[string][]string) *Dictionary {
	d := &Dictionary{}
	d.entries, d.reverse = buildIndex(entries)
	return d
}

// Default creates a dictionary seeded with the built-in skill list
func Default() *Dictionary {
	return New(DefaultEntries())
}

// DefaultEntries returns a fresh copy of the built-in skill list
func DefaultEntries() map[string][]string {
	var entries map[string][]string
	if err := json.Unmarshal(defaultSkillsJSON, &entries); err != nil {
		panic(fmt.Sprintf("embedded skill dictionary is invalid: %v", err))
	}
	return entries
}

// buildIndex normalizes entries and derives the reverse index.
// Canonicals are visited in sorted order so conflicting synonyms resolve the same way every time.
func buildIndex(entries map[string][]string) (map[string][]string, map[string]string) {
	forward := make(map[string][]string, len(entries))
	reverse := make(map[string]string)

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		canonical := normalizeKey(key)
		if canonical == "" {
			continue
		}
		if _, ok := forward[canonical]; !ok {
			forward[canonical] = []string{}
		}
		reverse[canonical] = canonical

		for _, syn := range entries[key] {
			synonym := normalizeKey(syn)
			if synonym == "" || synonym == canonical {
				continue
			}
			if owner, ok := reverse[synonym]; ok && owner != canonical {
				forward[owner] = without(forward[owner], synonym)
			}
			if !contains(forward[canonical], synonym) {
				forward[canonical] = append(forward[canonical], synonym)
			}
			reverse[synonym] = canonical
		}
	}

	return forward, reverse
}

// NormalizeSkill resolves raw to its canonical skill. Unknown skills are returned unchanged.
func (d *Dictionary) NormalizeSkill(raw string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.normalizeLocked(raw)
}

func (d *Dictionary) normalizeLocked(raw string) string {
	if canonical, ok := d.reverse[normalizeKey(raw)]; ok {
		return canonical
	}
	return raw
}

// NormalizeSkills normalizes every skill and removes duplicates, keeping first-seen order
func (d *Dictionary) NormalizeSkills(list []string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.normalizeAllLocked(list)
}

func (d *Dictionary) normalizeAllLocked(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, raw := range list {
		n := d.normalizeLocked(raw)
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Comparison partitions a normalized requirement list against a candidate's skills
type Comparison struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// CompareSkills normalizes both lists and splits the required skills into the ones the
// candidate has and the ones they lack. Every normalized requirement lands in exactly one list.
func (d *Dictionary) CompareSkills(candidateSkills, requiredSkills []string) Comparison {
	d.mu.RLock()
	defer d.mu.RUnlock()

	have := make(map[string]bool, len(candidateSkills))
	for _, s := range d.normalizeAllLocked(candidateSkills) {
		have[s] = true
	}

	result := Comparison{Matched: []string{}, Missing: []string{}}
	for _, req := range d.normalizeAllLocked(requiredSkills) {
		if have[req] {
			result.Matched = append(result.Matched, req)
		} else {
			result.Missing = append(result.Missing, req)
		}
	}
	return result
}

// Has reports whether term (a canonical skill or a synonym) is known
func (d *Dictionary) Has(term string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.reverse[normalizeKey(term)]
	return ok
}

// Synonyms returns a copy of the synonyms registered under canonical
func (d *Dictionary) Synonyms(canonical string) ([]string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	syns, ok := d.entries[normalizeKey(canonical)]
	if !ok {
		return nil, false
	}
	return append([]string{}, syns...), true
}

// Canonicals returns every canonical skill, sorted
func (d *Dictionary) Canonicals() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.entries))
	for k := range d.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of canonical skills
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Entries returns a deep copy of the canonical -> synonyms mapping
func (d *Dictionary) Entries() map[string][]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string][]string, len(d.entries))
	for k, v := range d.entries {
		out[k] = append([]string{}, v...)
	}
	return out
}

// AddSkill registers a new canonical skill with no synonyms
func (d *Dictionary) AddSkill(canonical string) error {
	key := normalizeKey(canonical)
	if key == "" {
		return &ValidationError{Field: "skill", Message: "skill name is required"}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[key]; ok {
		return &SkillError{Skill: key, Err: ErrSkillExists}
	}
	d.registerLocked(key)
	return nil
}

// registerLocked adds key as a canonical skill. A synonym with the same name moves off
// its previous owner so the forward map and reverse index keep agreeing.
func (d *Dictionary) registerLocked(key string) {
	if owner, ok := d.reverse[key]; ok && owner != key {
		d.entries[owner] = without(d.entries[owner], key)
	}
	d.entries[key] = []string{}
	d.reverse[key] = key
}

// AddSkillSynonym attaches synonym to canonical, registering canonical if it is new.
// Adding the same pair twice is a no-op. A synonym owned by another canonical moves to
// this one (last write wins).
func (d *Dictionary) AddSkillSynonym(canonical, synonym string) error {
	key := normalizeKey(canonical)
	syn := normalizeKey(synonym)
	if key == "" {
		return &ValidationError{Field: "skill", Message: "skill name is required"}
	}
	if syn == "" {
		return &ValidationError{Field: "synonym", Message: "synonym is required"}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[key]; !ok {
		d.registerLocked(key)
	}
	if syn == key {
		return nil
	}

	if owner, ok := d.reverse[syn]; ok && owner != key {
		if list, exists := d.entries[owner]; exists {
			d.entries[owner] = without(list, syn)
		}
	}
	if !contains(d.entries[key], syn) {
		d.entries[key] = append(d.entries[key], syn)
	}
	d.reverse[syn] = key
	return nil
}

// RemoveSkill deletes a canonical skill and every synonym that resolves to it
func (d *Dictionary) RemoveSkill(canonical string) error {
	key := normalizeKey(canonical)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[key]; !ok {
		return &SkillError{Skill: key, Err: ErrSkillNotFound}
	}
	delete(d.entries, key)
	for term, owner := range d.reverse {
		if owner == key {
			delete(d.reverse, term)
		}
	}
	return nil
}

// RemoveSynonym detaches synonym from canonical
func (d *Dictionary) RemoveSynonym(canonical, synonym string) error {
	key := normalizeKey(canonical)
	syn := normalizeKey(synonym)

	d.mu.Lock()
	defer d.mu.Unlock()

	list, ok := d.entries[key]
	if !ok {
		return &SkillError{Skill: key, Err: ErrSkillNotFound}
	}
	if !contains(list, syn) {
		return &SkillError{Skill: syn, Err: ErrSynonymNotFound}
	}
	d.entries[key] = without(list, syn)
	if d.reverse[syn] == key {
		delete(d.reverse, syn)
	}
	return nil
}

// Replace swaps the whole dictionary contents in one step
func (d *Dictionary) Replace(entries map[string][]string) {
	forward, reverse := buildIndex(entries)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = forward
	d.reverse = reverse
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func without(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
