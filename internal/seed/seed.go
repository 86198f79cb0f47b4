package seed

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pushparaj09/medishift-ai/internal/employee"
	"github.com/pushparaj09/medishift-ai/internal/leave"
	"github.com/pushparaj09/medishift-ai/internal/notification"
	"github.com/pushparaj09/medishift-ai/internal/schedule"
)

// Stores collects the repositories the demo dataset is written into.
type Stores struct {
	Employees     employee.Repository
	Shifts        schedule.ShiftRepository
	Leaves        leave.Repository
	Notifications notification.Repository
}

type seedEmployee struct {
	name     string
	role     employee.Role
	dept     employee.Department
	status   employee.Status
	distance float64
	email    string
	phone    string
	avatar   string
	username string
	password string
}

var roster = []seedEmployee{
	{"Dr. Sarah Chen", employee.RoleDoctor, employee.DepartmentER, employee.StatusAvailable, 3.5, "sarah.chen@medishift.com", "+1 (555) 010-1010", "https://picsum.photos/200/200?random=1", "sarah", "password"},
	{"James Wilson", employee.RoleNurse, employee.DepartmentER, employee.StatusBusy, 12.1, "j.wilson@medishift.com", "+1 (555) 020-2020", "https://picsum.photos/200/200?random=2", "james", "password"},
	{"Dr. Emily Watson", employee.RoleDoctor, employee.DepartmentPediatrics, employee.StatusOffDuty, 1.2, "emily.w@medishift.com", "+1 (555) 030-3030", "https://picsum.photos/200/200?random=3", "emily", "password"},
	{"Michael Brown", employee.RoleTechnician, employee.DepartmentICU, employee.StatusAvailable, 8.7, "m.brown@medishift.com", "+1 (555) 040-4040", "https://picsum.photos/200/200?random=4", "michael", "password"},
	{"Lisa Ray", employee.RoleNurse, employee.DepartmentICU, employee.StatusOnBreak, 5.4, "lisa.ray@medishift.com", "+1 (555) 050-5050", "https://picsum.photos/200/200?random=5", "lisa", "password"},
	{"Dr. John Doe", employee.RoleDoctor, employee.DepartmentSurgery, employee.StatusInSurgery, 15.0, "j.doe@medishift.com", "+1 (555) 060-6060", "https://picsum.photos/200/200?random=6", "john", "password"},
	{"Patricia Lee", employee.RoleAdministrator, employee.DepartmentGeneral, employee.StatusAvailable, 22.3, "admin.lee@medishift.com", "+1 (555) 070-7070", "https://picsum.photos/200/200?random=7", "admin", "admin"},
	{"Robert Taylor", employee.RoleNurse, employee.DepartmentER, employee.StatusBusy, 4.1, "r.taylor@medishift.com", "+1 (555) 080-8080", "https://picsum.photos/200/200?random=8", "robert", "password"},
}

// Load populates the in-memory stores with the demo roster, a couple of
// shifts around today, sample leave requests and two notifications for
// the first doctor. Intended for development setups only.
func Load(stores Stores, bcryptCost int, logger *slog.Logger) error {
	ids := make([]string, 0, len(roster))
	for _, se := range roster {
		hash, err := bcrypt.GenerateFromPassword([]byte(se.password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", se.username, err)
		}

		emp := &employee.Employee{
			Name:          se.name,
			Role:          se.role,
			Department:    se.dept,
			CurrentStatus: se.status,
			DistanceKM:    se.distance,
			Email:         se.email,
			PhoneNumber:   se.phone,
			AvatarURL:     se.avatar,
			Username:      se.username,
			PasswordHash:  string(hash),
		}
		if err := stores.Employees.Create(emp); err != nil {
			return fmt.Errorf("seed employee %s: %w", se.username, err)
		}
		ids = append(ids, emp.ID)
	}

	today := time.Now().Format(schedule.DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(schedule.DateLayout)

	shiftRows := []struct {
		employee int
		date     string
		t        schedule.ShiftType
	}{
		{0, today, schedule.ShiftMorning},
		{1, today, schedule.ShiftNight},
		{2, today, schedule.ShiftAfternoon},
		{0, tomorrow, schedule.ShiftOff},
		{1, tomorrow, schedule.ShiftMorning},
	}
	for _, row := range shiftRows {
		if _, err := stores.Shifts.Upsert(ids[row.employee], row.date, row.t); err != nil {
			return fmt.Errorf("seed shift: %w", err)
		}
	}

	leaveRows := []struct {
		employee   int
		start, end string
		reason     string
		status     leave.Status
	}{
		{2, "2023-11-10", "2023-11-12", "Medical Conference", leave.StatusPending},
		{4, "2023-11-15", "2023-11-20", "Family Vacation", leave.StatusApproved},
		{5, "2023-11-05", "2023-11-06", "Personal", leave.StatusRejected},
	}
	for _, row := range leaveRows {
		req := &leave.Request{
			EmployeeID: ids[row.employee],
			StartDate:  row.start,
			EndDate:    row.end,
			Reason:     row.reason,
			Status:     row.status,
		}
		if err := stores.Leaves.Create(req); err != nil {
			return fmt.Errorf("seed leave request: %w", err)
		}
	}

	now := time.Now()
	notifRows := []*notification.UserNotification{
		{
			TargetUserID: ids[0],
			Title:        "Shift Update",
			Message:      "Your shift on Monday has been changed to Morning.",
			Category:     notification.CategorySystem,
			Timestamp:    now.Add(-3 * time.Hour),
		},
		{
			TargetUserID: ids[0],
			Title:        "Policy Update",
			Message:      "New hygiene protocols are in effect.",
			Category:     notification.CategoryAlert,
			Timestamp:    now.Add(-6 * time.Hour),
			IsRead:       true,
		},
	}
	for _, n := range notifRows {
		if err := stores.Notifications.Add(n); err != nil {
			return fmt.Errorf("seed notification: %w", err)
		}
	}

	logger.Info("demo data loaded",
		"employees", len(roster),
		"shifts", len(shiftRows),
		"leave_requests", len(leaveRows))
	return nil
}
