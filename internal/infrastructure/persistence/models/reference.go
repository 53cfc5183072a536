package models

import (
	"github.com/transitops/backend/internal/domain/reference"
)

// VehicleModel is the persistence model for fleet vehicles
type VehicleModel struct {
	ID     int    `gorm:"primaryKey"`
	Car    string `gorm:"size:20;not null;uniqueIndex"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name
func (VehicleModel) TableName() string { return "vehicles" }

// ToDomain converts the model to a domain vehicle
func (m *VehicleModel) ToDomain() reference.Vehicle {
	return reference.Vehicle{ID: m.ID, Car: m.Car, Active: m.Active}
}

// BusLineModel is the persistence model for bus lines
type BusLineModel struct {
	ID   int    `gorm:"primaryKey"`
	Code string `gorm:"size:20;not null;uniqueIndex"`
	Name string `gorm:"size:120;not null"`
}

// TableName returns the table name
func (BusLineModel) TableName() string { return "bus_lines" }

// ToDomain converts the model to a domain bus line
func (m *BusLineModel) ToDomain() reference.BusLine {
	return reference.BusLine{ID: m.ID, Code: m.Code, Name: m.Name}
}

// MotiveModel is the persistence model for occurrence motives
type MotiveModel struct {
	ID              int    `gorm:"primaryKey"`
	Label           string `gorm:"size:120;not null"`
	OccurrenceTypes string `gorm:"type:text;not null;default:'[]'"`
}

// TableName returns the table name
func (MotiveModel) TableName() string { return "ro_motives" }

// ToDomain converts the model to a domain motive
func (m *MotiveModel) ToDomain() reference.Motive {
	return reference.Motive{
		ID:              m.ID,
		Label:           m.Label,
		OccurrenceTypes: intSliceFromJSON(m.OccurrenceTypes),
	}
}

// OccurrenceItemModel is the persistence model for catalog occurrences
type OccurrenceItemModel struct {
	ID               int    `gorm:"primaryKey"`
	Label            string `gorm:"size:120;not null"`
	SectorsAffected  string `gorm:"type:text;not null;default:'[]'"`
	RequiresCutVideo bool   `gorm:"not null;default:false"`
}

// TableName returns the table name
func (OccurrenceItemModel) TableName() string { return "occurrence_catalog" }

// ToDomain converts the model to a domain occurrence item
func (m *OccurrenceItemModel) ToDomain() reference.OccurrenceItem {
	return reference.OccurrenceItem{
		ID:               m.ID,
		Label:            m.Label,
		SectorsAffected:  intSliceFromJSON(m.SectorsAffected),
		RequiresCutVideo: m.RequiresCutVideo,
	}
}

// AssignableUserModel is the persistence model for assignable portal users
type AssignableUserModel struct {
	ID          int    `gorm:"primaryKey"`
	Username    string `gorm:"size:60;not null;uniqueIndex"`
	Name        string `gorm:"size:120;not null"`
	Departments string `gorm:"type:text;not null;default:'[]'"`
}

// TableName returns the table name
func (AssignableUserModel) TableName() string { return "portal_users" }

// ToDomain converts the model to a domain assignable user
func (m *AssignableUserModel) ToDomain() reference.AssignableUser {
	return reference.AssignableUser{
		ID:          m.ID,
		Username:    m.Username,
		Name:        m.Name,
		Departments: intSliceFromJSON(m.Departments),
	}
}

// LookupItemModel is the persistence model for simple keyed lookup lists
// (statuses, genders, priorities, groups, source channels).
type LookupItemModel struct {
	ID    int    `gorm:"primaryKey;autoIncrement:false"`
	Kind  string `gorm:"size:40;not null;primaryKey"`
	Label string `gorm:"size:120;not null"`
}

// TableName returns the table name
func (LookupItemModel) TableName() string { return "lookup_items" }

// ToDomain converts the model to a domain item
func (m *LookupItemModel) ToDomain() reference.Item {
	return reference.Item{ID: m.ID, Label: m.Label}
}
