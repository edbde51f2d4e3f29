package preset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tubesift/tubesift/internal/store"
	"github.com/tubesift/tubesift/pkg/errors"
	"github.com/tubesift/tubesift/pkg/interfaces"
	"github.com/tubesift/tubesift/pkg/models"
)

// Manager owns the preset lifecycle. All mutations persist immediately
// and the store's preset table is never touched except through it.
//
// The default flag is the one shared mutable resource: every
// clear-then-set sequence runs under mu and inside a transaction, so
// concurrent callers can never observe two defaults.
type Manager struct {
	store  *store.Store
	logger interfaces.Logger

	mu sync.Mutex
}

// NewManager creates a preset manager.
func NewManager(s *store.Store, logger interfaces.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

// Create persists a new preset. Fails with a duplicate name error when
// the name is taken and a validation error when the preset or its
// criteria is malformed.
func (m *Manager) Create(ctx context.Context, preset *models.Preset) error {
	if err := preset.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, err := m.store.GetPreset(ctx, preset.Name); err == nil && existing != nil {
		return errors.DuplicateName(preset.Name)
	} else if err != nil && !errors.IsNotFound(err) {
		return err
	}

	if preset.ID == uuid.Nil {
		preset.ID = uuid.New()
	}
	now := time.Now().UTC()
	preset.CreatedAt = now
	preset.UpdatedAt = now

	err := m.store.WithTx(ctx, func(tx *store.Store) error {
		if preset.IsDefault {
			if err := tx.ClearDefaults(ctx); err != nil {
				return err
			}
		}
		return tx.PutPreset(ctx, preset)
	})
	if err != nil {
		m.logger.Error("failed to create preset", interfaces.Error(err))
		return err
	}

	m.logger.Info("preset created",
		interfaces.String("name", preset.Name),
		interfaces.Bool("default", preset.IsDefault))
	return nil
}

// Get retrieves a preset by name.
func (m *Manager) Get(ctx context.Context, name string) (*models.Preset, error) {
	return m.store.GetPreset(ctx, name)
}

// List returns all presets, default first, then by name.
func (m *Manager) List(ctx context.Context) ([]*models.Preset, error) {
	return m.store.ListPresets(ctx)
}

// Update replaces a preset's criteria and settings as a whole; there
// are no partial-field updates.
func (m *Manager) Update(ctx context.Context, name string, preset *models.Preset) (*models.Preset, error) {
	preset.Name = name
	if err := preset.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.store.GetPreset(ctx, name)
	if err != nil {
		return nil, err
	}

	preset.ID = existing.ID
	preset.CreatedAt = existing.CreatedAt
	preset.UpdatedAt = time.Now().UTC()

	err = m.store.WithTx(ctx, func(tx *store.Store) error {
		if preset.IsDefault && !existing.IsDefault {
			if err := tx.ClearDefaults(ctx); err != nil {
				return err
			}
		}
		return tx.PutPreset(ctx, preset)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("preset updated", interfaces.String("name", name))
	return preset, nil
}

// Delete removes a preset. Deleting the current default clears the
// flag globally; no other preset is promoted. Export history keeps its
// back-reference to the deleted name.
func (m *Manager) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.DeletePreset(ctx, name); err != nil {
		return err
	}

	m.logger.Info("preset deleted", interfaces.String("name", name))
	return nil
}

// SetDefault marks the named preset as the default. The clear-then-set
// sequence is transactional: readers observe either the old default or
// the new one, never zero or two.
func (m *Manager) SetDefault(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.WithTx(ctx, func(tx *store.Store) error {
		preset, err := tx.GetPreset(ctx, name)
		if err != nil {
			return err
		}
		if err := tx.ClearDefaults(ctx); err != nil {
			return err
		}
		preset.IsDefault = true
		preset.UpdatedAt = time.Now().UTC()
		return tx.PutPreset(ctx, preset)
	})
}

// GetDefault returns the current default preset, or a not found error
// when none is flagged.
func (m *Manager) GetDefault(ctx context.Context) (*models.Preset, error) {
	presets, err := m.store.ListPresets(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range presets {
		if p.IsDefault {
			return p, nil
		}
	}
	return nil, errors.NotFound("no default preset")
}
