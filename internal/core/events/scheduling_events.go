package events

// Event types published by the scheduling, leave, and directory services.
// The notification package subscribes to these and fans them out as
// toasts and per-user notifications.
const (
	TypeDoctorMarkedOff   = "shift.doctor_marked_off"
	TypeAutoFillCompleted = "schedule.autofill_completed"

	TypeSwapSourceSelected     = "swap.source_selected"
	TypeSwapSelectionCancelled = "swap.selection_cancelled"

	TypeSwapProposed = "swap.proposed"
	TypeSwapApproved = "swap.approved"
	TypeSwapRejected = "swap.rejected"

	TypeLeaveSubmitted = "leave.submitted"
	TypeLeaveApproved  = "leave.approved"
	TypeLeaveRejected  = "leave.rejected"

	TypeEmployeeOnboarded     = "employee.onboarded"
	TypeEmployeeUpdated       = "employee.updated"
	TypeEmployeeRemoved       = "employee.removed"
	TypeEmployeeStatusChanged = "employee.status_changed"
	TypeCredentialsUpdated    = "employee.credentials_updated"

	TypeEmergencyDispatched        = "employee.emergency_dispatched"
	TypeEmergencyDispatchCompleted = "employee.emergency_dispatch_completed"
)

func DoctorMarkedOff(name, date string) BaseEvent {
	return NewBaseEvent(TypeDoctorMarkedOff, map[string]interface{}{
		"name": name,
		"date": date,
	})
}

func AutoFillCompleted(filled int, gapDates []string) BaseEvent {
	return NewBaseEvent(TypeAutoFillCompleted, map[string]interface{}{
		"filled":    filled,
		"gap_dates": gapDates,
	})
}

func SwapSourceSelected() BaseEvent {
	return NewBaseEvent(TypeSwapSourceSelected, map[string]interface{}{})
}

func SwapSelectionCancelled() BaseEvent {
	return NewBaseEvent(TypeSwapSelectionCancelled, map[string]interface{}{})
}

func SwapProposed() BaseEvent {
	return NewBaseEvent(TypeSwapProposed, map[string]interface{}{})
}

func SwapApproved(requesterID, requesterName, targetID, targetName, requestingDate, targetDate string) BaseEvent {
	return NewBaseEvent(TypeSwapApproved, map[string]interface{}{
		"requester_id":    requesterID,
		"requester_name":  requesterName,
		"target_id":       targetID,
		"target_name":     targetName,
		"requesting_date": requestingDate,
		"target_date":     targetDate,
	})
}

func SwapRejected(requesterID, targetID, requestingDate, targetDate string) BaseEvent {
	return NewBaseEvent(TypeSwapRejected, map[string]interface{}{
		"requester_id":    requesterID,
		"target_id":       targetID,
		"requesting_date": requestingDate,
		"target_date":     targetDate,
	})
}

func LeaveSubmitted(employeeID string) BaseEvent {
	return NewBaseEvent(TypeLeaveSubmitted, map[string]interface{}{
		"employee_id": employeeID,
	})
}

func LeaveApproved(employeeID, name, startDate, endDate string, isDoctor bool) BaseEvent {
	return NewBaseEvent(TypeLeaveApproved, map[string]interface{}{
		"employee_id": employeeID,
		"name":        name,
		"start_date":  startDate,
		"end_date":    endDate,
		"is_doctor":   isDoctor,
	})
}

func LeaveRejected(employeeID, startDate, endDate string) BaseEvent {
	return NewBaseEvent(TypeLeaveRejected, map[string]interface{}{
		"employee_id": employeeID,
		"start_date":  startDate,
		"end_date":    endDate,
	})
}

func EmployeeOnboarded(name string) BaseEvent {
	return NewBaseEvent(TypeEmployeeOnboarded, map[string]interface{}{"name": name})
}

func EmployeeUpdated(name string) BaseEvent {
	return NewBaseEvent(TypeEmployeeUpdated, map[string]interface{}{"name": name})
}

func EmployeeRemoved() BaseEvent {
	return NewBaseEvent(TypeEmployeeRemoved, map[string]interface{}{})
}

func EmployeeStatusChanged(status string) BaseEvent {
	return NewBaseEvent(TypeEmployeeStatusChanged, map[string]interface{}{"status": status})
}

func CredentialsUpdated() BaseEvent {
	return NewBaseEvent(TypeCredentialsUpdated, map[string]interface{}{})
}

func EmergencyDispatched(employeeID, name string) BaseEvent {
	return NewBaseEvent(TypeEmergencyDispatched, map[string]interface{}{
		"employee_id": employeeID,
		"name":        name,
	})
}

func EmergencyDispatchCompleted(count int) BaseEvent {
	return NewBaseEvent(TypeEmergencyDispatchCompleted, map[string]interface{}{
		"count": count,
	})
}
