package models

import (
	"time"

	"github.com/transitops/backend/internal/domain/camerareview"
	"github.com/transitops/backend/internal/domain/maintenance"
	"github.com/transitops/backend/internal/domain/monitoring"
	"github.com/transitops/backend/internal/domain/shared"
)

// MaintenanceRecordModel is the persistence model for maintenance records
type MaintenanceRecordModel struct {
	BaseModel
	Car             string    `gorm:"size:20;not null;index"`
	BusLine         string    `gorm:"size:20;not null"`
	MaintenanceType int       `gorm:"not null"`
	Detail          int       `gorm:"not null"`
	Comments        string    `gorm:"type:text;not null"`
	DateMaintenance time.Time `gorm:"not null"`
	ReportedBy      string    `gorm:"size:20;not null"`
	Approver        string    `gorm:"size:20"`
	Status          int       `gorm:"not null;index"`
}

// TableName returns the table name
func (MaintenanceRecordModel) TableName() string {
	return "maintenance_records"
}

// ToDomain converts the model to a domain record
func (m *MaintenanceRecordModel) ToDomain() *maintenance.Record {
	return &maintenance.Record{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			Version:   m.Version,
		},
		Car:             m.Car,
		BusLine:         m.BusLine,
		MaintenanceType: m.MaintenanceType,
		Detail:          m.Detail,
		Comments:        m.Comments,
		DateMaintenance: m.DateMaintenance,
		ReportedBy:      m.ReportedBy,
		Approver:        m.Approver,
		Status:          maintenance.Status(m.Status),
	}
}

// MaintenanceRecordModelFromDomain converts a domain record to the model
func MaintenanceRecordModelFromDomain(r *maintenance.Record) *MaintenanceRecordModel {
	return &MaintenanceRecordModel{
		BaseModel: BaseModel{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Version:   r.Version,
		},
		Car:             r.Car,
		BusLine:         r.BusLine,
		MaintenanceType: r.MaintenanceType,
		Detail:          r.Detail,
		Comments:        r.Comments,
		DateMaintenance: r.DateMaintenance,
		ReportedBy:      r.ReportedBy,
		Approver:        r.Approver,
		Status:          int(r.Status),
	}
}

// MonitoringRecordModel is the persistence model for monitoring records
type MonitoringRecordModel struct {
	BaseModel
	Car                   string    `gorm:"size:20;not null;index"`
	BusLine               string    `gorm:"size:20;not null"`
	OccurrenceType        int       `gorm:"not null"`
	OccurrenceCode        int       `gorm:"not null"`
	DateOccurrence        time.Time `gorm:"not null"`
	DateCheck             time.Time `gorm:"not null"`
	Comment               string    `gorm:"type:text"`
	Treatment             string    `gorm:"type:text"`
	DateInspector         time.Time
	InspectorRegistration string `gorm:"size:20"`
	MonitorRegistration   string `gorm:"size:20;not null"`
	Status                int    `gorm:"not null;index"`
}

// TableName returns the table name
func (MonitoringRecordModel) TableName() string {
	return "monitoring_records"
}

// ToDomain converts the model to a domain record
func (m *MonitoringRecordModel) ToDomain() *monitoring.Record {
	return &monitoring.Record{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			Version:   m.Version,
		},
		Car:                   m.Car,
		BusLine:               m.BusLine,
		OccurrenceType:        m.OccurrenceType,
		OccurrenceCode:        m.OccurrenceCode,
		DateOccurrence:        m.DateOccurrence,
		DateCheck:             m.DateCheck,
		Comment:               m.Comment,
		Treatment:             m.Treatment,
		DateInspector:         m.DateInspector,
		InspectorRegistration: m.InspectorRegistration,
		MonitorRegistration:   m.MonitorRegistration,
		Status:                monitoring.Status(m.Status),
	}
}

// MonitoringRecordModelFromDomain converts a domain record to the model
func MonitoringRecordModelFromDomain(r *monitoring.Record) *MonitoringRecordModel {
	return &MonitoringRecordModel{
		BaseModel: BaseModel{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Version:   r.Version,
		},
		Car:                   r.Car,
		BusLine:               r.BusLine,
		OccurrenceType:        r.OccurrenceType,
		OccurrenceCode:        r.OccurrenceCode,
		DateOccurrence:        r.DateOccurrence,
		DateCheck:             r.DateCheck,
		Comment:               r.Comment,
		Treatment:             r.Treatment,
		DateInspector:         r.DateInspector,
		InspectorRegistration: r.InspectorRegistration,
		MonitorRegistration:   r.MonitorRegistration,
		Status:                int(r.Status),
	}
}

// CameraReviewModel is the persistence model for camera review records
type CameraReviewModel struct {
	BaseModel
	Car              string    `gorm:"size:20;not null;index"`
	BusLine          string    `gorm:"size:20;not null"`
	OccurrenceCode   int       `gorm:"not null"`
	RequiresCutVideo bool      `gorm:"not null;default:false"`
	Comment          string    `gorm:"type:text;not null"`
	DateOccurrence   time.Time `gorm:"not null"`
	DateCamera       time.Time `gorm:"not null"`
	DateReview       time.Time
	ReviewedBy       string `gorm:"size:20"`
	ThereVideo       bool   `gorm:"not null;default:false"`
	VideoPath        string `gorm:"size:255"`
	RequestedBy      string `gorm:"size:20;not null"`
	Status           int    `gorm:"not null;index"`
}

// TableName returns the table name
func (CameraReviewModel) TableName() string {
	return "camera_reviews"
}

// ToDomain converts the model to a domain record
func (m *CameraReviewModel) ToDomain() *camerareview.Record {
	return &camerareview.Record{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			Version:   m.Version,
		},
		Car:              m.Car,
		BusLine:          m.BusLine,
		OccurrenceCode:   m.OccurrenceCode,
		RequiresCutVideo: m.RequiresCutVideo,
		Comment:          m.Comment,
		DateOccurrence:   m.DateOccurrence,
		DateCamera:       m.DateCamera,
		DateReview:       m.DateReview,
		ReviewedBy:       m.ReviewedBy,
		ThereVideo:       m.ThereVideo,
		VideoPath:        m.VideoPath,
		RequestedBy:      m.RequestedBy,
		Status:           camerareview.Status(m.Status),
	}
}

// CameraReviewModelFromDomain converts a domain record to the model
func CameraReviewModelFromDomain(r *camerareview.Record) *CameraReviewModel {
	return &CameraReviewModel{
		BaseModel: BaseModel{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Version:   r.Version,
		},
		Car:              r.Car,
		BusLine:          r.BusLine,
		OccurrenceCode:   r.OccurrenceCode,
		RequiresCutVideo: r.RequiresCutVideo,
		Comment:          r.Comment,
		DateOccurrence:   r.DateOccurrence,
		DateCamera:       r.DateCamera,
		DateReview:       r.DateReview,
		ReviewedBy:       r.ReviewedBy,
		ThereVideo:       r.ThereVideo,
		VideoPath:        r.VideoPath,
		RequestedBy:      r.RequestedBy,
		Status:           int(r.Status),
	}
}
