package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/transitops/backend/internal/domain/reference"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

// lookupKinds maps cache keys to the kind column of the lookup table.
var lookupKinds = map[string]string{
	reference.KeyCities:                "city",
	reference.KeyROStatuses:            "ro_status",
	reference.KeyROOccurrenceTypes:     "ro_occurrence_type",
	reference.KeyROSectors:             "ro_sector",
	reference.KeyMonitoringTypes:       "monitoring_occurrence_type",
	reference.KeyMonitoringStatuses:    "monitoring_status",
	reference.KeyMonitoringOccurrences: "monitoring_occurrence",
	reference.KeyMaintenanceTypes:      "maintenance_type",
	reference.KeyMaintenanceStatuses:   "maintenance_status",
	reference.KeyMaintenanceDetails:    "maintenance_detail",
	reference.KeySacStatuses:           "sac_status",
	reference.KeySacGenders:            "sac_gender",
	reference.KeySacOccurrenceTypes:    "sac_occurrence_type",
	reference.KeySacSourceChannels:     "sac_source_channel",
	reference.KeySacGroups:             "sac_group",
	reference.KeySacPriorities:         "sac_priority",
	reference.KeyCameraStatuses:        "camera_status",
}

// GormReferenceSource loads lookup lists from the database. It implements
// reference.Source; caching happens one layer up.
type GormReferenceSource struct {
	db *gorm.DB
}

// NewGormReferenceSource creates a new GormReferenceSource
func NewGormReferenceSource(db *gorm.DB) *GormReferenceSource {
	return &GormReferenceSource{db: db}
}

// Load fetches the lookup list for the key
func (s *GormReferenceSource) Load(ctx context.Context, key string) (interface{}, error) {
	switch key {
	case reference.KeyVehicles:
		var vehicleModels []models.VehicleModel
		if err := s.db.WithContext(ctx).Where("active").Order("car").Find(&vehicleModels).Error; err != nil {
			return nil, err
		}
		vehicles := make([]reference.Vehicle, len(vehicleModels))
		for i := range vehicleModels {
			vehicles[i] = vehicleModels[i].ToDomain()
		}
		return vehicles, nil

	case reference.KeyBusLines:
		var lineModels []models.BusLineModel
		if err := s.db.WithContext(ctx).Order("code").Find(&lineModels).Error; err != nil {
			return nil, err
		}
		lines := make([]reference.BusLine, len(lineModels))
		for i := range lineModels {
			lines[i] = lineModels[i].ToDomain()
		}
		return lines, nil

	case reference.KeyROMotives:
		var motiveModels []models.MotiveModel
		if err := s.db.WithContext(ctx).Order("label").Find(&motiveModels).Error; err != nil {
			return nil, err
		}
		motives := make([]reference.Motive, len(motiveModels))
		for i := range motiveModels {
			motives[i] = motiveModels[i].ToDomain()
		}
		return motives, nil

	case reference.KeyROOccurrences, reference.KeyCameraOccurrences:
		var itemModels []models.OccurrenceItemModel
		if err := s.db.WithContext(ctx).Order("label").Find(&itemModels).Error; err != nil {
			return nil, err
		}
		items := make([]reference.OccurrenceItem, len(itemModels))
		for i := range itemModels {
			items[i] = itemModels[i].ToDomain()
		}
		return items, nil

	case reference.KeyROUsers, reference.KeySacUsers:
		var userModels []models.AssignableUserModel
		if err := s.db.WithContext(ctx).Order("name").Find(&userModels).Error; err != nil {
			return nil, err
		}
		users := make([]reference.AssignableUser, len(userModels))
		for i := range userModels {
			users[i] = userModels[i].ToDomain()
		}
		if key == reference.KeyROUsers {
			return reference.ReportAssignees(users), nil
		}
		return users, nil
	}

	kind, ok := lookupKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown reference key %q", key)
	}

	var itemModels []models.LookupItemModel
	if err := s.db.WithContext(ctx).Where("kind = ?", kind).Order("id").Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]reference.Item, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items, nil
}

var _ reference.Source = (*GormReferenceSource)(nil)
