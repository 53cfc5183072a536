package reference

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/transitops/backend/internal/domain/reference"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/cache"
)

// validKeys guards lookups against arbitrary cache keys from the API.
var validKeys = map[string]struct{}{
	reference.KeyVehicles:              {},
	reference.KeyBusLines:              {},
	reference.KeyCities:                {},
	reference.KeyROUsers:               {},
	reference.KeyROMotives:             {},
	reference.KeyROStatuses:            {},
	reference.KeyROOccurrenceTypes:     {},
	reference.KeyROSectors:             {},
	reference.KeyROOccurrences:         {},
	reference.KeyMonitoringTypes:       {},
	reference.KeyMonitoringStatuses:    {},
	reference.KeyMonitoringOccurrences: {},
	reference.KeyMaintenanceTypes:      {},
	reference.KeyMaintenanceStatuses:   {},
	reference.KeyMaintenanceDetails:    {},
	reference.KeySacUsers:              {},
	reference.KeySacStatuses:           {},
	reference.KeySacGenders:            {},
	reference.KeySacOccurrenceTypes:    {},
	reference.KeySacSourceChannels:     {},
	reference.KeySacGroups:             {},
	reference.KeySacPriorities:         {},
	reference.KeyCameraStatuses:        {},
	reference.KeyCameraOccurrences:     {},
}

// Service serves the portal's lookup lists. Each key is loaded from the
// source at most once and then answered from the cache until someone
// invalidates it, so catalog edits only show up after an explicit refresh.
type Service struct {
	source reference.Source
	cache  cache.ReferenceCache
	logger *zap.Logger
}

// NewService creates a reference service
func NewService(source reference.Source, c cache.ReferenceCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, cache: c, logger: logger}
}

// List returns the lookup list for the key as a raw JSON payload.
func (s *Service) List(ctx context.Context, key string) (json.RawMessage, error) {
	if _, ok := validKeys[key]; !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Unknown lookup list "+key)
	}

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	value, err := s.source.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, shared.NewDomainError("BACKEND_ERROR", "Failed to encode lookup list "+key)
	}

	if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
	}
	return payload, nil
}

// MotivesForType returns the occurrence motives applicable to the type.
func (s *Service) MotivesForType(ctx context.Context, occurrenceType int) ([]reference.Motive, error) {
	payload, err := s.List(ctx, reference.KeyROMotives)
	if err != nil {
		return nil, err
	}
	var motives []reference.Motive
	if err := json.Unmarshal(payload, &motives); err != nil {
		return nil, shared.NewDomainError("BACKEND_ERROR", "Corrupt motive list in cache")
	}
	return reference.MotivesForType(motives, occurrenceType), nil
}

// OccurrencesForSector returns the catalog occurrences applicable to the
// affected sector.
func (s *Service) OccurrencesForSector(ctx context.Context, sector int) ([]reference.OccurrenceItem, error) {
	payload, err := s.List(ctx, reference.KeyROOccurrences)
	if err != nil {
		return nil, err
	}
	var items []reference.OccurrenceItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, shared.NewDomainError("BACKEND_ERROR", "Corrupt occurrence list in cache")
	}
	return reference.OccurrencesForSector(items, sector), nil
}

// ReportAssignees returns the users occurrence reports can be assigned to,
// limited to the departments that work them.
func (s *Service) ReportAssignees(ctx context.Context) ([]reference.AssignableUser, error) {
	payload, err := s.List(ctx, reference.KeyROUsers)
	if err != nil {
		return nil, err
	}
	var users []reference.AssignableUser
	if err := json.Unmarshal(payload, &users); err != nil {
		return nil, shared.NewDomainError("BACKEND_ERROR", "Corrupt user list in cache")
	}
	return reference.ReportAssignees(users), nil
}

// RequiresCutVideo reports whether the camera occurrence calls for a cut
// video, read from the camera occurrence catalog.
func (s *Service) RequiresCutVideo(ctx context.Context, occurrenceCode int) (bool, error) {
	payload, err := s.List(ctx, reference.KeyCameraOccurrences)
	if err != nil {
		return false, err
	}
	var items []reference.OccurrenceItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return false, shared.NewDomainError("BACKEND_ERROR", "Corrupt camera occurrence list in cache")
	}
	for _, it := range items {
		if it.ID == occurrenceCode {
			return it.RequiresCutVideo, nil
		}
	}
	return false, shared.NewDomainError("NOT_FOUND", "Unknown camera occurrence")
}

// Invalidate drops one lookup list so the next read reloads it.
func (s *Service) Invalidate(ctx context.Context, key string) error {
	if _, ok := validKeys[key]; !ok {
		return shared.NewDomainError("NOT_FOUND", "Unknown lookup list "+key)
	}
	return s.cache.Invalidate(ctx, key)
}

// InvalidateAll drops every lookup list.
func (s *Service) InvalidateAll(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
