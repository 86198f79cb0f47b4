package schedule

import (
	"errors"
	"time"
)

type ShiftType string

const (
	ShiftMorning   ShiftType = "Morning"
	ShiftAfternoon ShiftType = "Afternoon"
	ShiftNight     ShiftType = "Night"
	ShiftOff       ShiftType = "Off"
)

func (t ShiftType) Valid() bool {
	switch t {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftOff:
		return true
	}
	return false
}

// Working reports whether the shift type puts the employee on duty.
func (t ShiftType) Working() bool {
	return t.Valid() && t != ShiftOff
}

// Shift is one cell of the schedule grid. At most one shift exists per
// employee per calendar day; a missing record means Off.
type Shift struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Date       string    `json:"date"`
	Type       ShiftType `json:"type"`
}

// autoFillRotation is the deterministic assignment cycle used by
// auto-fill for employees without a shift record.
var autoFillRotation = []ShiftType{ShiftMorning, ShiftAfternoon, ShiftNight}

// Dates are civil days in YYYY-MM-DD form, no timezone attached.
const DateLayout = "2006-01-02"

func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

func ValidateDate(date string) error {
	if _, err := ParseDate(date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	return nil
}

// WeekDates returns the 7 consecutive days starting at start.
func WeekDates(start string) ([]string, error) {
	t, err := ParseDate(start)
	if err != nil {
		return nil, errors.New("start date must be in YYYY-MM-DD format")
	}
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = t.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates, nil
}

// Domain errors
var (
	ErrShiftNotFound = errors.New("no shift recorded for that day")
	ErrSwapNotFound  = errors.New("swap request not found")
	ErrSwapDecided   = errors.New("swap request has already been decided")
	ErrNotInSwapMode = errors.New("swap mode is not active")
	ErrUnknownStaff  = errors.New("employee not found")
)
