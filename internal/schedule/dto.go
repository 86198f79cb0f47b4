package schedule

import "errors"

// SetShiftDTO assigns a shift type to one schedule cell.
type SetShiftDTO struct {
	EmployeeID string    `json:"employeeId" validate:"required"`
	Date       string    `json:"date" validate:"required"`
	Type       ShiftType `json:"type" validate:"required"`
}

func (dto SetShiftDTO) Validate() error {
	if dto.EmployeeID == "" {
		return errors.New("employeeId is required")
	}
	if err := ValidateDate(dto.Date); err != nil {
		return err
	}
	if !dto.Type.Valid() {
		return errors.New("type must be one of Morning, Afternoon, Night, Off")
	}
	return nil
}

// SelectCellDTO is one click in the swap selection flow. The shift type
// is resolved server side from the current schedule.
type SelectCellDTO struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Date       string `json:"date" validate:"required"`
}

func (dto SelectCellDTO) Validate() error {
	if dto.EmployeeID == "" {
		return errors.New("employeeId is required")
	}
	return ValidateDate(dto.Date)
}

// AutoFillDTO runs auto-fill over the week starting at StartDate.
type AutoFillDTO struct {
	StartDate string `json:"startDate" validate:"required"`
}

func (dto AutoFillDTO) Validate() error {
	return ValidateDate(dto.StartDate)
}

// WeekScheduleDTO is the schedule grid response for one week.
type WeekScheduleDTO struct {
	Dates  []string `json:"dates"`
	Shifts []*Shift `json:"shifts"`
}

// SelectionResponseDTO reports the result of a swap selection click.
type SelectionResponseDTO struct {
	Outcome SelectionOutcome `json:"outcome"`
	State   SelectionState   `json:"state"`
	Source  *CellRef         `json:"source,omitempty"`
	Request *SwapRequest     `json:"request,omitempty"`
}

// AutoFillResult summarizes one auto-fill run.
type AutoFillResult struct {
	Filled   int      `json:"filled"`
	GapDates []string `json:"gapDates"`
}
