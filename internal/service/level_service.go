package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"promptquest/internal/model"
)

// LevelSource supplies the level sequence (Mongo or a YAML pack)
type LevelSource interface {
	List(ctx context.Context) ([]model.Level, error)
}

// LevelService holds the validated, ordered level catalog in memory
type LevelService struct {
	source LevelSource

	mu     sync.RWMutex
	levels []model.Level
}

func NewLevelService(source LevelSource) *LevelService {
	return &LevelService{source: source}
}

// Load reads and validates all levels, replacing the catalog only on success
func (s *LevelService) Load(ctx context.Context) error {
	levels, err := s.source.List(ctx)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}

	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Number < levels[j].Number })
	if err := model.ValidateSequence(levels); err != nil {
		return err
	}

	s.mu.Lock()
	s.levels = levels
	s.mu.Unlock()

	log.Printf("Loaded %d levels", len(levels))
	return nil
}

func (s *LevelService) List() []model.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Level, len(s.levels))
	copy(out, s.levels)
	return out
}

func (s *LevelService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.levels)
}

func (s *LevelService) Get(number int) (*model.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// numbers are 1..n after validation
	if number < 1 || number > len(s.levels) {
		return nil, ErrLevelNotFound
	}
	l := s.levels[number-1]
	return &l, nil
}

func (s *LevelService) First() (*model.Level, error) {
	return s.Get(1)
}

// Next returns the level after number, or nil when number is the last one
func (s *LevelService) Next(number int) (*model.Level, error) {
	if number == s.Count() {
		return nil, nil
	}
	return s.Get(number + 1)
}
