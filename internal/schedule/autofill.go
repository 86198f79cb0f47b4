package schedule

import (
	"context"

	"github.com/pushparaj09/medishift-ai/internal/core/events"
	"github.com/pushparaj09/medishift-ai/internal/employee"
)

type cellKey struct {
	employeeID string
	date       string
}

// AutoFill populates the week starting at dto.StartDate. Doctor
// coverage is handled first: a day with no working doctor gets the
// first doctor without any assignment put on Morning; if every doctor
// is explicitly Off the day is reported as a coverage gap and left
// alone. Remaining employees without an assignment get a deterministic
// rotation slot. Days already fully populated are never changed, so a
// second run over the same week fills nothing.
func (s *Service) AutoFill(ctx context.Context, dto AutoFillDTO) (*AutoFillResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("auto-fill validation failed", "error", err)
		return nil, err
	}

	dates, err := WeekDates(dto.StartDate)
	if err != nil {
		return nil, err
	}

	roster, err := s.directory.ListEmployees()
	if err != nil {
		s.logger.Error("failed to list employees for auto-fill", "error", err)
		return nil, err
	}

	existing, err := s.shifts.ListForDates(dates)
	if err != nil {
		s.logger.Error("failed to list shifts for auto-fill", "error", err)
		return nil, err
	}

	assigned := make(map[cellKey]ShiftType, len(existing))
	for _, shift := range existing {
		assigned[cellKey{shift.EmployeeID, shift.Date}] = shift.Type
	}

	result := &AutoFillResult{}

	for _, date := range dates {
		day, err := ParseDate(date)
		if err != nil {
			return nil, err
		}

		doctorWorking := false
		var firstUnassignedDoctor *employee.Employee
		doctorCount := 0

		for _, emp := range roster {
			if !emp.IsDoctor() {
				continue
			}
			doctorCount++
			t, hasRecord := assigned[cellKey{emp.ID, date}]
			switch {
			case hasRecord && t.Working():
				doctorWorking = true
			case !hasRecord && firstUnassignedDoctor == nil:
				firstUnassignedDoctor = emp
			}
		}

		if !doctorWorking {
			if firstUnassignedDoctor != nil {
				if _, err := s.shifts.Upsert(firstUnassignedDoctor.ID, date, ShiftMorning); err != nil {
					return nil, err
				}
				assigned[cellKey{firstUnassignedDoctor.ID, date}] = ShiftMorning
				result.Filled++
			} else if doctorCount > 0 {
				result.GapDates = append(result.GapDates, date)
			}
		}

		for _, emp := range roster {
			if _, hasRecord := assigned[cellKey{emp.ID, date}]; hasRecord {
				continue
			}
			t := autoFillRotation[(len(emp.Name)+day.Day())%len(autoFillRotation)]
			if _, err := s.shifts.Upsert(emp.ID, date, t); err != nil {
				return nil, err
			}
			assigned[cellKey{emp.ID, date}] = t
			result.Filled++
		}
	}

	s.logger.Info("auto-fill completed",
		"start", dto.StartDate,
		"filled", result.Filled,
		"gap_dates", result.GapDates)

	if err := s.bus.PublishSync(ctx, events.AutoFillCompleted(result.Filled, result.GapDates)); err != nil {
		s.logger.Error("failed to publish auto-fill event", "error", err)
	}

	return result, nil
}
