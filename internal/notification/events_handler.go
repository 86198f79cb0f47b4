package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pushparaj09/medishift-ai/internal/core/events"
)

// RegisterEventHandlers subscribes the notification service to the
// scheduling domain events and materializes each one as toasts and
// per-user notifications. Handlers run synchronously with the store
// mutation that published the event.
func (s *Service) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.TypeDoctorMarkedOff, s.onDoctorMarkedOff)
	bus.Subscribe(events.TypeAutoFillCompleted, s.onAutoFillCompleted)
	bus.Subscribe(events.TypeSwapSourceSelected, s.onSwapSourceSelected)
	bus.Subscribe(events.TypeSwapSelectionCancelled, s.onSwapSelectionCancelled)
	bus.Subscribe(events.TypeSwapProposed, s.onSwapProposed)
	bus.Subscribe(events.TypeSwapApproved, s.onSwapApproved)
	bus.Subscribe(events.TypeSwapRejected, s.onSwapRejected)
	bus.Subscribe(events.TypeLeaveSubmitted, s.onLeaveSubmitted)
	bus.Subscribe(events.TypeLeaveApproved, s.onLeaveApproved)
	bus.Subscribe(events.TypeLeaveRejected, s.onLeaveRejected)
	bus.Subscribe(events.TypeEmployeeOnboarded, s.onEmployeeOnboarded)
	bus.Subscribe(events.TypeEmployeeUpdated, s.onEmployeeUpdated)
	bus.Subscribe(events.TypeEmployeeRemoved, s.onEmployeeRemoved)
	bus.Subscribe(events.TypeEmployeeStatusChanged, s.onEmployeeStatusChanged)
	bus.Subscribe(events.TypeCredentialsUpdated, s.onCredentialsUpdated)
	bus.Subscribe(events.TypeEmergencyDispatched, s.onEmergencyDispatched)
	bus.Subscribe(events.TypeEmergencyDispatchCompleted, s.onEmergencyDispatchCompleted)
}

func (s *Service) onDoctorMarkedOff(ctx context.Context, event events.Event) error {
	p := event.Payload()
	_, err := s.Push(
		"Schedule Alert: Doctor Unavailable",
		fmt.Sprintf("Dr. %s has been marked OFF for %s. Please ensure shift coverage.", str(p, "name"), str(p, "date")),
		SeverityWarning)
	return err
}

func (s *Service) onAutoFillCompleted(ctx context.Context, event events.Event) error {
	p := event.Payload()
	gapDates := strs(p, "gap_dates")
	filled := num(p, "filled")

	switch {
	case len(gapDates) > 0:
		_, err := s.Push(
			"Coverage Alert",
			fmt.Sprintf("Insufficient doctor coverage for: %s. All available doctors are marked OFF.", formatDates(gapDates)),
			SeverityError)
		return err
	case filled > 0:
		_, err := s.Push(
			"Schedule Optimized",
			fmt.Sprintf("Auto-filled %d shifts. Priority given to filling doctor shortages.", filled),
			SeveritySuccess)
		return err
	default:
		_, err := s.Push("No Changes", "Schedule is already fully populated.", SeverityInfo)
		return err
	}
}

func (s *Service) onSwapSourceSelected(ctx context.Context, event events.Event) error {
	_, err := s.Push("Swap Source Selected", "Now select the target shift to propose a swap.", SeverityInfo)
	return err
}

func (s *Service) onSwapSelectionCancelled(ctx context.Context, event events.Event) error {
	_, err := s.Push("Selection Cancelled", "Swap source selection cleared.", SeverityInfo)
	return err
}

func (s *Service) onSwapProposed(ctx context.Context, event events.Event) error {
	_, err := s.Push("Swap Proposed", "Shift swap request has been created and is pending approval.", SeveritySuccess)
	return err
}

func (s *Service) onSwapApproved(ctx context.Context, event events.Event) error {
	p := event.Payload()

	if _, err := s.Push("Swap Approved", "Shifts have been successfully exchanged.", SeveritySuccess); err != nil {
		return err
	}

	if _, err := s.Send(
		str(p, "requester_id"),
		"Shift Swap Approved",
		fmt.Sprintf("Your swap request with %s for %s has been approved.", str(p, "target_name"), str(p, "requesting_date")),
		CategorySuccess); err != nil {
		return err
	}

	_, err := s.Send(
		str(p, "target_id"),
		"Shift Swap Approved",
		fmt.Sprintf("Your shift on %s has been swapped with %s.", str(p, "target_date"), str(p, "requester_name")),
		CategorySuccess)
	return err
}

// Both participants hear about a rejection, matching how leave
// rejections are reported.
func (s *Service) onSwapRejected(ctx context.Context, event events.Event) error {
	p := event.Payload()

	if _, err := s.Send(
		str(p, "requester_id"),
		"Shift Swap Rejected",
		fmt.Sprintf("Your swap request for %s has been rejected.", str(p, "requesting_date")),
		CategoryAlert); err != nil {
		return err
	}

	_, err := s.Send(
		str(p, "target_id"),
		"Shift Swap Rejected",
		fmt.Sprintf("The proposed swap for your shift on %s has been rejected.", str(p, "target_date")),
		CategoryAlert)
	return err
}

func (s *Service) onLeaveSubmitted(ctx context.Context, event events.Event) error {
	_, err := s.Push("Request Submitted", "Your leave request has been submitted for approval.", SeveritySuccess)
	return err
}

func (s *Service) onLeaveApproved(ctx context.Context, event events.Event) error {
	p := event.Payload()

	if _, err := s.Send(
		str(p, "employee_id"),
		"Leave Request Approved",
		fmt.Sprintf("Your leave request from %s to %s has been approved.", str(p, "start_date"), str(p, "end_date")),
		CategorySuccess); err != nil {
		return err
	}

	if isDoctor, _ := p["is_doctor"].(bool); isDoctor {
		_, err := s.Push(
			"Alert: Doctor Unavailable",
			fmt.Sprintf("Dr. %s is on approved leave from %s to %s.", str(p, "name"), str(p, "start_date"), str(p, "end_date")),
			SeverityWarning)
		return err
	}
	return nil
}

func (s *Service) onLeaveRejected(ctx context.Context, event events.Event) error {
	p := event.Payload()
	_, err := s.Send(
		str(p, "employee_id"),
		"Leave Request Rejected",
		fmt.Sprintf("Your leave request from %s to %s has been rejected.", str(p, "start_date"), str(p, "end_date")),
		CategoryAlert)
	return err
}

func (s *Service) onEmployeeOnboarded(ctx context.Context, event events.Event) error {
	p := event.Payload()
	_, err := s.Push(
		"Employee Onboarded",
		fmt.Sprintf("%s has been successfully added to the system.", str(p, "name")),
		SeveritySuccess)
	return err
}

func (s *Service) onEmployeeUpdated(ctx context.Context, event events.Event) error {
	p := event.Payload()
	_, err := s.Push(
		"Employee Updated",
		fmt.Sprintf("%s's details have been updated.", str(p, "name")),
		SeveritySuccess)
	return err
}

func (s *Service) onEmployeeRemoved(ctx context.Context, event events.Event) error {
	_, err := s.Push("Employee Removed", "Staff member has been permanently removed from the system.", SeveritySuccess)
	return err
}

func (s *Service) onEmployeeStatusChanged(ctx context.Context, event events.Event) error {
	p := event.Payload()
	_, err := s.Push(
		"Status Updated",
		fmt.Sprintf("Employee status changed to %s", str(p, "status")),
		SeveritySuccess)
	return err
}

func (s *Service) onCredentialsUpdated(ctx context.Context, event events.Event) error {
	_, err := s.Push("Credentials Updated", "User access details have been updated successfully.", SeveritySuccess)
	return err
}

func (s *Service) onEmergencyDispatched(ctx context.Context, event events.Event) error {
	p := event.Payload()
	_, err := s.Send(
		str(p, "employee_id"),
		"URGENT: EMERGENCY ALERT",
		"Immediate assistance required. Please report to station.",
		CategoryAlert)
	return err
}

func (s *Service) onEmergencyDispatchCompleted(ctx context.Context, event events.Event) error {
	p := event.Payload()
	_, err := s.Push(
		"Mass Alert Sent",
		fmt.Sprintf("Dispatched alerts to top %d nearest staff members.", num(p, "count")),
		SeverityError)
	return err
}

func str(p map[string]interface{}, key string) string {
	v, _ := p[key].(string)
	return v
}

func num(p map[string]interface{}, key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func strs(p map[string]interface{}, key string) []string {
	v, _ := p[key].([]string)
	return v
}

// formatDates renders coverage gap days like "Mon, 11/6".
func formatDates(dates []string) string {
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			formatted = append(formatted, d)
			continue
		}
		formatted = append(formatted, t.Format("Mon, 1/2"))
	}
	return strings.Join(formatted, ", ")
}
