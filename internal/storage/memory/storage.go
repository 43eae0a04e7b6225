package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu      sync.RWMutex
	presets map[string]*model.Preset
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		presets: make(map[string]*model.Preset),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePreset(ctx context.Context, preset *model.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *preset
	s.presets[preset.Name] = &stored
	return nil
}

func (s *Storage) GetPreset(ctx context.Context, name string) (*model.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	preset, ok := s.presets[name]
	if !ok {
		return nil, model.ErrPresetNotFound
	}
	result := *preset
	return &result, nil
}

func (s *Storage) ListPresets(ctx context.Context) ([]*model.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Preset, 0, len(s.presets))
	for _, preset := range s.presets {
		p := *preset
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Storage) DeletePreset(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[name]; !ok {
		return model.ErrPresetNotFound
	}
	delete(s.presets, name)
	return nil
}
