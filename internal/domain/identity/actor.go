package identity

// Department codes used by the workflow gates. These mirror the operator's
// department registry and are stable across environments.
const (
	DepartmentMonitoring      = 10
	DepartmentMaintenance     = 14
	DepartmentGPS             = 15
	DepartmentCameraReview    = 16
	DepartmentCustomerService = 23
)

// AccessLevel grants an actor a permission level inside one department.
// Level 1 is the elevated (supervisor) level.
type AccessLevel struct {
	Department int `json:"department"`
	Level      int `json:"level"`
}

// ElevatedLevel is the level required for approve, assign and close actions.
const ElevatedLevel = 1

// Actor is the authenticated portal user as seen by the workflow gates.
type Actor struct {
	ID             int           `json:"id"`
	Registration   string        `json:"registration"`
	Name           string        `json:"name"`
	Departments    []int         `json:"departments"`
	AccessLevels   []AccessLevel `json:"access_levels"`
	MainDepartment string        `json:"main_department"`
}

// CanActOnDepartment reports whether the actor belongs to the department.
// An actor with no department data is denied.
func (a Actor) CanActOnDepartment(department int) bool {
	for _, d := range a.Departments {
		if d == department {
			return true
		}
	}
	return false
}

// HasElevatedAccess reports whether the actor holds the elevated level in
// the department. Missing access-level data denies.
func (a Actor) HasElevatedAccess(department int) bool {
	for _, al := range a.AccessLevels {
		if al.Department == department && al.Level == ElevatedLevel {
			return true
		}
	}
	return false
}
