package storage

import (
	"context"

	"github.com/mcoot/connectn-go/internal/model"
)

// Storage defines the interface for persisting user-defined rule presets.
// Games themselves are never stored.
type Storage interface {
	// SavePreset creates or replaces the preset with the same name
	SavePreset(ctx context.Context, preset *model.Preset) error
	// GetPreset returns model.ErrPresetNotFound when no preset has the name
	GetPreset(ctx context.Context, name string) (*model.Preset, error)
	// ListPresets returns every stored preset sorted by name
	ListPresets(ctx context.Context) ([]*model.Preset, error)
	// DeletePreset returns model.ErrPresetNotFound when no preset has the name
	DeletePreset(ctx context.Context, name string) error
}
