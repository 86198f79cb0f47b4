package leave

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// SubmitLeaveDTO is the request payload for a new leave request.
type SubmitLeaveDTO struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

func (dto SubmitLeaveDTO) Validate() error {
	if dto.StartDate == "" || dto.EndDate == "" || strings.TrimSpace(dto.Reason) == "" {
		return errors.New("start date, end date and a reason are required")
	}

	start, err := time.Parse(dateLayout, dto.StartDate)
	if err != nil {
		return errors.New("start date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, dto.EndDate)
	if err != nil {
		return errors.New("end date must be in YYYY-MM-DD format")
	}

	if end.Before(start) {
		return errors.New("end date cannot be before start date")
	}
	return nil
}
