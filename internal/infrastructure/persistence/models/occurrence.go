package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/transitops/backend/internal/domain/occurrence"
	"github.com/transitops/backend/internal/domain/shared"
)

// OccurrenceReportModel is the persistence model for occurrence reports
type OccurrenceReportModel struct {
	BaseModel
	ReportNumber       string          `gorm:"size:30;not null;uniqueIndex"`
	Car                string          `gorm:"size:20;not null;index"`
	BusLine            string          `gorm:"size:20;not null"`
	DriverRegistration string          `gorm:"size:20;not null"`
	Motive             int             `gorm:"not null"`
	SectorAffected     int             `gorm:"not null"`
	OccurrenceType     int             `gorm:"not null;index"`
	OccurrenceCode     int             `gorm:"not null"`
	Location           string          `gorm:"size:255;not null"`
	Detail             string          `gorm:"type:text;not null"`
	VehicleKilometer   decimal.Decimal `gorm:"type:numeric(12,2)"`
	DateOccurrence     time.Time       `gorm:"not null"`
	Response           string          `gorm:"type:text"`
	AssigneeUsername   string          `gorm:"size:60;index"`
	PreviousAssignee   string          `gorm:"size:60"`
	DelayMinutes       int
	TripsCancelled     int
	DeviationRealized  string `gorm:"type:text"`
	SubstituteCar      string `gorm:"size:20"`
	Status             int    `gorm:"not null;index"`
}

// TableName returns the table name
func (OccurrenceReportModel) TableName() string {
	return "occurrence_reports"
}

// ToDomain converts the model to a domain report
func (m *OccurrenceReportModel) ToDomain() *occurrence.Report {
	return &occurrence.Report{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			Version:   m.Version,
		},
		ReportNumber:       m.ReportNumber,
		Car:                m.Car,
		BusLine:            m.BusLine,
		DriverRegistration: m.DriverRegistration,
		Motive:             m.Motive,
		SectorAffected:     m.SectorAffected,
		Type:               occurrence.Type(m.OccurrenceType),
		OccurrenceCode:     m.OccurrenceCode,
		Location:           m.Location,
		Detail:             m.Detail,
		VehicleKilometer:   m.VehicleKilometer,
		DateOccurrence:     m.DateOccurrence,
		Response:           m.Response,
		AssigneeUsername:   m.AssigneeUsername,
		PreviousAssignee:   m.PreviousAssignee,
		DelayMinutes:       m.DelayMinutes,
		TripsCancelled:     m.TripsCancelled,
		DeviationRealized:  m.DeviationRealized,
		SubstituteCar:      m.SubstituteCar,
		Status:             occurrence.Status(m.Status),
	}
}

// OccurrenceReportModelFromDomain converts a domain report to the model
func OccurrenceReportModelFromDomain(r *occurrence.Report) *OccurrenceReportModel {
	return &OccurrenceReportModel{
		BaseModel: BaseModel{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Version:   r.Version,
		},
		ReportNumber:       r.ReportNumber,
		Car:                r.Car,
		BusLine:            r.BusLine,
		DriverRegistration: r.DriverRegistration,
		Motive:             r.Motive,
		SectorAffected:     r.SectorAffected,
		OccurrenceType:     int(r.Type),
		OccurrenceCode:     r.OccurrenceCode,
		Location:           r.Location,
		Detail:             r.Detail,
		VehicleKilometer:   r.VehicleKilometer,
		DateOccurrence:     r.DateOccurrence,
		Response:           r.Response,
		AssigneeUsername:   r.AssigneeUsername,
		PreviousAssignee:   r.PreviousAssignee,
		DelayMinutes:       r.DelayMinutes,
		TripsCancelled:     r.TripsCancelled,
		DeviationRealized:  r.DeviationRealized,
		SubstituteCar:      r.SubstituteCar,
		Status:             int(r.Status),
	}
}
