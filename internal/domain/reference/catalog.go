package reference

import (
	"context"

	"github.com/transitops/backend/internal/domain/identity"
)

// Cache keys for every lookup list the portal serves. The cache is
// populated at most once per key and only invalidated on request.
const (
	KeyVehicles              = "vehicles"
	KeyBusLines              = "busLine"
	KeyCities                = "city"
	KeyROUsers               = "roUsers"
	KeyROMotives             = "roMotive"
	KeyROStatuses            = "roStatus"
	KeyROOccurrenceTypes     = "roOccurrenceType"
	KeyROSectors             = "roSector"
	KeyROOccurrences         = "roOccurrenceList"
	KeyMonitoringTypes       = "monitoringOccurrenceTypes"
	KeyMonitoringStatuses    = "monitoringStatus"
	KeyMonitoringOccurrences = "monitoringOccurrence"
	KeyMaintenanceTypes      = "maintenanceTypes"
	KeyMaintenanceStatuses   = "maintenanceStatus"
	KeyMaintenanceDetails    = "maintenanceDetails"
	KeySacUsers              = "sacUsers"
	KeySacStatuses           = "sacStatus"
	KeySacGenders            = "sacGender"
	KeySacOccurrenceTypes    = "sacOccurrenceType"
	KeySacSourceChannels     = "sacSourceChannel"
	KeySacGroups             = "sacGroup"
	KeySacPriorities         = "sacPriority"
	KeyCameraStatuses        = "cameraStatus"
	KeyCameraOccurrences     = "cameraOccurrence"
)

// Item is a generic lookup entry.
type Item struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Vehicle is a fleet vehicle available for record forms.
type Vehicle struct {
	ID     int    `json:"id"`
	Car    string `json:"car"`
	Active bool   `json:"active"`
}

// BusLine is a registered bus line.
type BusLine struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Motive is an occurrence motive, applicable only to some occurrence types.
type Motive struct {
	ID              int    `json:"id"`
	Label           string `json:"label"`
	OccurrenceTypes []int  `json:"occurrence_types"`
}

// OccurrenceItem is a catalog occurrence, applicable only to some sectors.
// RequiresCutVideo drives the camera review workflow branch.
type OccurrenceItem struct {
	ID               int    `json:"id"`
	Label            string `json:"label"`
	SectorsAffected  []int  `json:"sectors_affected"`
	RequiresCutVideo bool   `json:"requires_cut_video"`
}

// AssignableUser is a portal user that records can be assigned to.
type AssignableUser struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Departments []int  `json:"departments"`
}

// MotivesForType filters motives down to those applicable to the type.
func MotivesForType(motives []Motive, occurrenceType int) []Motive {
	out := make([]Motive, 0, len(motives))
	for _, m := range motives {
		for _, t := range m.OccurrenceTypes {
			if t == occurrenceType {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// OccurrencesForSector filters occurrences down to those applicable to the
// affected sector.
func OccurrencesForSector(items []OccurrenceItem, sector int) []OccurrenceItem {
	out := make([]OccurrenceItem, 0, len(items))
	for _, it := range items {
		for _, s := range it.SectorsAffected {
			if s == sector {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// ReportAssignees filters users down to the departments that work
// occurrence reports (GPS and maintenance).
func ReportAssignees(users []AssignableUser) []AssignableUser {
	out := make([]AssignableUser, 0, len(users))
	for _, u := range users {
		for _, d := range u.Departments {
			if d == identity.DepartmentGPS || d == identity.DepartmentMaintenance {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

// Source loads lookup lists from the backing store. Implementations live in
// the persistence layer; the application service caches their results.
type Source interface {
	Load(ctx context.Context, key string) (interface{}, error)
}
