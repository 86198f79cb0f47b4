package schedule_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pushparaj09/medishift-ai/internal/core/events"
	"github.com/pushparaj09/medishift-ai/internal/employee"
	"github.com/pushparaj09/medishift-ai/internal/schedule"
)

// Mock shift repository for testing
type mockShiftRepository struct {
	shifts      map[string]*schedule.Shift
	upsertError error
	listError   error
	nextID      int
}

func newMockShiftRepository() *mockShiftRepository {
	return &mockShiftRepository{
		shifts: make(map[string]*schedule.Shift),
		nextID: 1,
	}
}

func cellKey(employeeID, date string) string {
	return employeeID + "|" + date
}

func (m *mockShiftRepository) Get(employeeID, date string) (*schedule.Shift, error) {
	shift, exists := m.shifts[cellKey(employeeID, date)]
	if !exists {
		return nil, schedule.ErrShiftNotFound
	}
	return shift, nil
}

func (m *mockShiftRepository) Upsert(employeeID, date string, t schedule.ShiftType) (*schedule.Shift, error) {
	if m.upsertError != nil {
		return nil, m.upsertError
	}
	key := cellKey(employeeID, date)
	if existing, exists := m.shifts[key]; exists {
		existing.Type = t
		return existing, nil
	}
	shift := &schedule.Shift{
		ID:         fmt.Sprintf("shift-%d", m.nextID),
		EmployeeID: employeeID,
		Date:       date,
		Type:       t,
	}
	m.nextID++
	m.shifts[key] = shift
	return shift, nil
}

func (m *mockShiftRepository) Delete(employeeID, date string) error {
	delete(m.shifts, cellKey(employeeID, date))
	return nil
}

func (m *mockShiftRepository) ListForDates(dates []string) ([]*schedule.Shift, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	inRange := make(map[string]bool, len(dates))
	for _, d := range dates {
		inRange[d] = true
	}
	out := make([]*schedule.Shift, 0)
	for _, shift := range m.shifts {
		if inRange[shift.Date] {
			out = append(out, shift)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

// Mock swap repository for testing
type mockSwapRepository struct {
	requests    map[string]*schedule.SwapRequest
	createError error
	nextID      int
}

func newMockSwapRepository() *mockSwapRepository {
	return &mockSwapRepository{
		requests: make(map[string]*schedule.SwapRequest),
		nextID:   1,
	}
}

func (m *mockSwapRepository) Create(r *schedule.SwapRequest) error {
	if m.createError != nil {
		return m.createError
	}
	r.ID = fmt.Sprintf("swap-%d", m.nextID)
	m.nextID++
	m.requests[r.ID] = r
	return nil
}

func (m *mockSwapRepository) GetByID(id string) (*schedule.SwapRequest, error) {
	r, exists := m.requests[id]
	if !exists {
		return nil, schedule.ErrSwapNotFound
	}
	return r, nil
}

func (m *mockSwapRepository) List() ([]*schedule.SwapRequest, error) {
	out := make([]*schedule.SwapRequest, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockSwapRepository) Update(r *schedule.SwapRequest) error {
	m.requests[r.ID] = r
	return nil
}

// Mock directory for testing
type mockDirectory struct {
	employees map[string]*employee.Employee
	order     []string
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{employees: make(map[string]*employee.Employee)}
}

func (m *mockDirectory) add(e *employee.Employee) {
	m.employees[e.ID] = e
	m.order = append(m.order, e.ID)
}

func (m *mockDirectory) GetEmployee(id string) (*employee.Employee, error) {
	e, exists := m.employees[id]
	if !exists {
		return nil, employee.ErrNotFound
	}
	return e, nil
}

func (m *mockDirectory) ListEmployees() ([]*employee.Employee, error) {
	out := make([]*employee.Employee, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.employees[id])
	}
	return out, nil
}

var _ = Describe("ScheduleService", func() {
	var (
		service   *schedule.Service
		mockRepo  *mockShiftRepository
		mockSwaps *mockSwapRepository
		directory *mockDirectory
		bus       *events.EventBus
		published []events.Event
		logger    *slog.Logger
		ctx       context.Context
	)

	captureEvents := func(eventTypes ...string) {
		for _, t := range eventTypes {
			bus.Subscribe(t, func(ctx context.Context, e events.Event) error {
				published = append(published, e)
				return nil
			})
		}
	}

	BeforeEach(func() {
		mockRepo = newMockShiftRepository()
		mockSwaps = newMockSwapRepository()
		directory = newMockDirectory()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		published = nil
		ctx = context.Background()
		service = schedule.NewService(mockRepo, mockSwaps, directory, bus, logger)

		directory.add(&employee.Employee{ID: "doc-1", Name: "Dr. Sarah Chen", Role: employee.RoleDoctor})
		directory.add(&employee.Employee{ID: "nurse-1", Name: "James Wilson", Role: employee.RoleNurse})
	})

	Describe("SetShift", func() {
		Context("when assigning a shift to a known employee", func() {
			It("should store the shift", func() {
				// Given
				dto := schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftMorning}

				// When
				shift, err := service.SetShift(ctx, dto)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(shift.EmployeeID).To(Equal("nurse-1"))
				Expect(shift.Type).To(Equal(schedule.ShiftMorning))
			})

			It("should replace an existing assignment for the same cell", func() {
				// Given
				_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftMorning})
				Expect(err).ToNot(HaveOccurred())

				// When
				_, err = service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftNight})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.shifts).To(HaveLen(1))
				Expect(service.ShiftTypeFor("nurse-1", "2026-09-07")).To(Equal(schedule.ShiftNight))
			})
		})

		Context("when the employee does not exist", func() {
			It("should reject the assignment", func() {
				// Given
				dto := schedule.SetShiftDTO{EmployeeID: "ghost", Date: "2026-09-07", Type: schedule.ShiftMorning}

				// When
				_, err := service.SetShift(ctx, dto)

				// Then
				Expect(err).To(Equal(schedule.ErrUnknownStaff))
				Expect(mockRepo.shifts).To(BeEmpty())
			})
		})

		Context("when marking a doctor as Off", func() {
			It("should publish a doctor off event", func() {
				// Given
				captureEvents(events.TypeDoctorMarkedOff)

				// When
				_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "doc-1", Date: "2026-09-07", Type: schedule.ShiftOff})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(published).To(HaveLen(1))
				Expect(published[0].Payload()["name"]).To(Equal("Dr. Sarah Chen"))
			})

			It("should not publish for a nurse marked Off", func() {
				// Given
				captureEvents(events.TypeDoctorMarkedOff)

				// When
				_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftOff})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(published).To(BeEmpty())
			})
		})

		Context("when the date is malformed", func() {
			It("should return a validation error", func() {
				// When
				_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "07-09-2026", Type: schedule.ShiftMorning})

				// Then
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("ShiftTypeFor", func() {
		It("should default to Off when nothing is recorded", func() {
			Expect(service.ShiftTypeFor("nurse-1", "2026-09-07")).To(Equal(schedule.ShiftOff))
		})
	})

	Describe("WeekSchedule", func() {
		It("should return seven consecutive dates and their shifts", func() {
			// Given
			_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-09", Type: schedule.ShiftAfternoon})
			Expect(err).ToNot(HaveOccurred())

			// When
			week, err := service.WeekSchedule("2026-09-07")

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(week.Dates).To(HaveLen(7))
			Expect(week.Dates[0]).To(Equal("2026-09-07"))
			Expect(week.Dates[6]).To(Equal("2026-09-13"))
			Expect(week.Shifts).To(HaveLen(1))
		})
	})

	Describe("swap selection", func() {
		Context("when not in swap mode", func() {
			It("should reject cell selection", func() {
				// When
				_, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})

				// Then
				Expect(err).To(Equal(schedule.ErrNotInSwapMode))
			})
		})

		Context("when selecting the first cell", func() {
			It("should record the source and await the target", func() {
				// Given
				Expect(service.EnterSwapMode("user-1")).To(Equal(schedule.SelectionAwaitingSource))

				// When
				resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(resp.Outcome).To(Equal(schedule.OutcomeSourceSelected))
				Expect(resp.State).To(Equal(schedule.SelectionAwaitingTarget))
				Expect(resp.Source.EmployeeID).To(Equal("nurse-1"))
			})
		})

		Context("when reselecting the same cell", func() {
			It("should cancel back to awaiting source", func() {
				// Given
				service.EnterSwapMode("user-1")
				_, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})
				Expect(err).ToNot(HaveOccurred())

				// When
				resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(resp.Outcome).To(Equal(schedule.OutcomeCancelled))
				Expect(resp.State).To(Equal(schedule.SelectionAwaitingSource))
				Expect(mockSwaps.requests).To(BeEmpty())
			})
		})

		Context("when selecting a second distinct cell", func() {
			It("should create a pending swap request and leave swap mode", func() {
				// Given
				_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftMorning})
				Expect(err).ToNot(HaveOccurred())
				_, err = service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "doc-1", Date: "2026-09-08", Type: schedule.ShiftNight})
				Expect(err).ToNot(HaveOccurred())

				service.EnterSwapMode("user-1")
				_, err = service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})
				Expect(err).ToNot(HaveOccurred())

				// When
				resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "doc-1", Date: "2026-09-08"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(resp.Outcome).To(Equal(schedule.OutcomeProposed))
				Expect(resp.State).To(Equal(schedule.SelectionIdle))
				Expect(resp.Request).ToNot(BeNil())
				Expect(resp.Request.Status).To(Equal(schedule.SwapPending))
				Expect(resp.Request.RequestingEmployee).To(Equal("nurse-1"))
				Expect(resp.Request.TargetEmployee).To(Equal("doc-1"))
				Expect(resp.Request.RequestingShiftType).To(Equal(schedule.ShiftMorning))
				Expect(resp.Request.TargetShiftType).To(Equal(schedule.ShiftNight))
			})

			It("should allow one employee to swap between their own days", func() {
				// Given
				service.EnterSwapMode("user-1")
				_, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})
				Expect(err).ToNot(HaveOccurred())

				// When
				resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-08"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(resp.Outcome).To(Equal(schedule.OutcomeProposed))
			})
		})

		Context("when exiting swap mode", func() {
			It("should discard any selected source", func() {
				// Given
				service.EnterSwapMode("user-1")
				_, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})
				Expect(err).ToNot(HaveOccurred())

				// When
				state := service.ExitSwapMode("user-1")

				// Then
				Expect(state).To(Equal(schedule.SelectionIdle))
				_, err = service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "doc-1", Date: "2026-09-08"})
				Expect(err).To(Equal(schedule.ErrNotInSwapMode))
			})
		})

		It("should keep selections independent per user", func() {
			// Given
			service.EnterSwapMode("user-1")

			// When / Then
			Expect(service.SelectionState("user-1")).To(Equal(schedule.SelectionAwaitingSource))
			Expect(service.SelectionState("user-2")).To(Equal(schedule.SelectionIdle))
		})
	})

	Describe("ApproveSwap", func() {
		proposeSwap := func() *schedule.SwapRequest {
			_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftMorning})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "doc-1", Date: "2026-09-08", Type: schedule.ShiftNight})
			Expect(err).ToNot(HaveOccurred())

			service.EnterSwapMode("user-1")
			_, err = service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})
			Expect(err).ToNot(HaveOccurred())
			resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "doc-1", Date: "2026-09-08"})
			Expect(err).ToNot(HaveOccurred())
			return resp.Request
		}

		Context("when approving a pending request", func() {
			It("should exchange both schedule cells", func() {
				// Given
				request := proposeSwap()

				// When
				approved, err := service.ApproveSwap(ctx, request.ID)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(approved.Status).To(Equal(schedule.SwapApproved))
				Expect(service.ShiftTypeFor("nurse-1", "2026-09-08")).To(Equal(schedule.ShiftNight))
				Expect(service.ShiftTypeFor("doc-1", "2026-09-07")).To(Equal(schedule.ShiftMorning))
				Expect(service.ShiftTypeFor("nurse-1", "2026-09-07")).To(Equal(schedule.ShiftOff))
				Expect(service.ShiftTypeFor("doc-1", "2026-09-08")).To(Equal(schedule.ShiftOff))
			})

			It("should restore the original schedule when the reverse swap is approved", func() {
				// Given
				request := proposeSwap()
				_, err := service.ApproveSwap(ctx, request.ID)
				Expect(err).ToNot(HaveOccurred())

				service.EnterSwapMode("user-1")
				_, err = service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-08"})
				Expect(err).ToNot(HaveOccurred())
				resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "doc-1", Date: "2026-09-07"})
				Expect(err).ToNot(HaveOccurred())

				// When
				_, err = service.ApproveSwap(ctx, resp.Request.ID)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(service.ShiftTypeFor("nurse-1", "2026-09-07")).To(Equal(schedule.ShiftMorning))
				Expect(service.ShiftTypeFor("doc-1", "2026-09-08")).To(Equal(schedule.ShiftNight))
			})

			It("should publish an approval event with both names", func() {
				// Given
				captureEvents(events.TypeSwapApproved)
				request := proposeSwap()

				// When
				_, err := service.ApproveSwap(ctx, request.ID)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(published).To(HaveLen(1))
				Expect(published[0].Payload()["requester_name"]).To(Equal("James Wilson"))
				Expect(published[0].Payload()["target_name"]).To(Equal("Dr. Sarah Chen"))
			})
		})

		Context("when the request was already decided", func() {
			It("should refuse a second decision", func() {
				// Given
				request := proposeSwap()
				_, err := service.ApproveSwap(ctx, request.ID)
				Expect(err).ToNot(HaveOccurred())

				// When
				_, err = service.ApproveSwap(ctx, request.ID)

				// Then
				Expect(err).To(Equal(schedule.ErrSwapDecided))
			})
		})

		Context("when the request does not exist", func() {
			It("should return not found", func() {
				// When
				_, err := service.ApproveSwap(ctx, "missing")

				// Then
				Expect(err).To(Equal(schedule.ErrSwapNotFound))
			})
		})
	})

	Describe("RejectSwap", func() {
		It("should leave the schedule untouched", func() {
			// Given
			_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftMorning})
			Expect(err).ToNot(HaveOccurred())

			service.EnterSwapMode("user-1")
			_, err = service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})
			Expect(err).ToNot(HaveOccurred())
			resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "doc-1", Date: "2026-09-08"})
			Expect(err).ToNot(HaveOccurred())

			// When
			rejected, err := service.RejectSwap(ctx, resp.Request.ID)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(rejected.Status).To(Equal(schedule.SwapRejected))
			Expect(service.ShiftTypeFor("nurse-1", "2026-09-07")).To(Equal(schedule.ShiftMorning))

			// Then a rejected request cannot be approved afterwards
			_, err = service.ApproveSwap(ctx, resp.Request.ID)
			Expect(err).To(Equal(schedule.ErrSwapDecided))
		})
	})

	Describe("ListSwaps", func() {
		It("should filter by status", func() {
			// Given
			_, err := service.SetShift(ctx, schedule.SetShiftDTO{EmployeeID: "nurse-1", Date: "2026-09-07", Type: schedule.ShiftMorning})
			Expect(err).ToNot(HaveOccurred())

			service.EnterSwapMode("user-1")
			_, err = service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "nurse-1", Date: "2026-09-07"})
			Expect(err).ToNot(HaveOccurred())
			resp, err := service.SelectCell(ctx, "user-1", schedule.SelectCellDTO{EmployeeID: "doc-1", Date: "2026-09-08"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.RejectSwap(ctx, resp.Request.ID)
			Expect(err).ToNot(HaveOccurred())

			// When
			pending, err := service.ListSwaps(schedule.SwapPending)
			Expect(err).ToNot(HaveOccurred())
			rejected, err := service.ListSwaps(schedule.SwapRejected)
			Expect(err).ToNot(HaveOccurred())

			// Then
			Expect(pending).To(BeEmpty())
			Expect(rejected).To(HaveLen(1))
		})
	})
})
