package employee

import "errors"

type Role string

const (
	RoleDoctor        Role = "Doctor"
	RoleNurse         Role = "Nurse"
	RoleAdministrator Role = "Administrator"
	RoleTechnician    Role = "Technician"
	RoleIntern        Role = "Intern"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleAdministrator, RoleTechnician, RoleIntern:
		return true
	}
	return false
}

type Department string

const (
	DepartmentER         Department = "Emergency Room"
	DepartmentICU        Department = "Intensive Care Unit"
	DepartmentPediatrics Department = "Pediatrics"
	DepartmentSurgery    Department = "Surgery"
	DepartmentGeneral    Department = "General Ward"
	DepartmentOncology   Department = "Oncology"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentER, DepartmentICU, DepartmentPediatrics, DepartmentSurgery, DepartmentGeneral, DepartmentOncology:
		return true
	}
	return false
}

// Status is the live availability of an employee, independent of the
// shift schedule.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusInSurgery Status = "In Surgery"
	StatusOnBreak   Status = "On Break"
	StatusBusy      Status = "Busy"
	StatusOffDuty   Status = "Off Duty"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusInSurgery, StatusOnBreak, StatusBusy, StatusOffDuty:
		return true
	}
	return false
}

// Employee is a member of the hospital staff directory.
type Employee struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Role          Role       `json:"role"`
	Department    Department `json:"department"`
	CurrentStatus Status     `json:"currentStatus"`
	DistanceKM    float64    `json:"distanceKm"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phoneNumber"`
	AvatarURL     string     `json:"avatarUrl"`
	Username      string     `json:"username"`
	PasswordHash  string     `json:"-"`
}

func (e *Employee) IsDoctor() bool {
	return e.Role == RoleDoctor
}

func (e *Employee) IsAdministrator() bool {
	return e.Role == RoleAdministrator
}

// Dispatchable reports whether the employee can be called in for an
// emergency. Staff in surgery are never pulled out.
func (e *Employee) Dispatchable() bool {
	return e.CurrentStatus != StatusInSurgery
}

// Domain errors
var (
	ErrNotFound          = errors.New("employee not found")
	ErrUsernameNotFound  = errors.New("no employee with that username")
	ErrDuplicateUsername = errors.New("username already taken")
)
