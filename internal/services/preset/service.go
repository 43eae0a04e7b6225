package preset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/connectn-go/internal/model"
	"github.com/mcoot/connectn-go/internal/storage"
)

// Service resolves rule presets from the built-in set and from storage
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new preset Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger.With(slog.String("component", "preset-service")),
	}
}

// Get returns the preset with the given name. Built-in names are reserved,
// so a built-in preset is never shadowed by a stored one.
func (s *Service) Get(ctx context.Context, name string) (model.Preset, error) {
	if p, ok := model.BuiltinPreset(name); ok {
		return p, nil
	}
	p, err := s.storage.GetPreset(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrPresetNotFound) {
			return model.Preset{}, fmt.Errorf("%q: %w", name, err)
		}
		return model.Preset{}, fmt.Errorf("loading preset %q: %w", name, err)
	}
	return *p, nil
}

// Entry is a preset together with where it came from
type Entry struct {
	model.Preset
	Builtin bool `json:"builtin"`
}

// List returns built-in and stored presets sorted by name
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	stored, err := s.storage.ListPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}

	builtins := model.BuiltinPresets()
	entries := make([]Entry, 0, len(builtins)+len(stored))
	for _, p := range builtins {
		entries = append(entries, Entry{Preset: p, Builtin: true})
	}
	for _, p := range stored {
		if _, reserved := model.BuiltinPreset(p.Name); reserved {
			continue
		}
		entries = append(entries, Entry{Preset: *p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Save validates and stores a user-defined preset
func (s *Service) Save(ctx context.Context, p model.Preset) error {
	if _, reserved := model.BuiltinPreset(p.Name); reserved {
		return fmt.Errorf("%q: %w", p.Name, model.ErrPresetReserved)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.storage.SavePreset(ctx, &p); err != nil {
		s.logger.Error("failed to save preset",
			slog.String("preset", p.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("saving preset %q: %w", p.Name, err)
	}

	s.logger.Info("preset saved",
		slog.String("preset", p.Name),
		slog.Int("rows", p.Rows),
		slog.Int("columns", p.Columns),
		slog.Int("streak_to_win", p.Rules.StreakToWin),
	)
	return nil
}

// Delete removes a user-defined preset
func (s *Service) Delete(ctx context.Context, name string) error {
	if _, reserved := model.BuiltinPreset(name); reserved {
		return fmt.Errorf("%q: %w", name, model.ErrPresetReserved)
	}
	if err := s.storage.DeletePreset(ctx, name); err != nil {
		return fmt.Errorf("deleting preset %q: %w", name, err)
	}
	s.logger.Info("preset deleted", slog.String("preset", name))
	return nil
}
