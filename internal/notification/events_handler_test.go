package notification_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pushparaj09/medishift-ai/internal/core/events"
	"github.com/pushparaj09/medishift-ai/internal/notification"
	"github.com/pushparaj09/medishift-ai/internal/notification/memstore"
)

var _ = Describe("event fan-out", func() {
	var (
		service    *notification.Service
		toastStore *memstore.ToastStore
		bus        *events.EventBus
		logger     *slog.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		toastStore = memstore.NewToastStore(time.Minute)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		ctx = context.Background()
		service = notification.NewService(toastStore, memstore.NewNotificationStore(), logger)
		service.RegisterEventHandlers(bus)
	})

	AfterEach(func() {
		service.Close()
	})

	activeToasts := func() []*notification.Toast {
		toasts, err := service.ActiveToasts()
		Expect(err).ToNot(HaveOccurred())
		return toasts
	}

	Describe("doctor marked off", func() {
		It("should warn about missing coverage", func() {
			// When
			err := bus.PublishSync(ctx, events.DoctorMarkedOff("Sarah Chen", "2026-09-07"))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Schedule Alert: Doctor Unavailable"))
			Expect(toasts[0].Message).To(Equal("Dr. Sarah Chen has been marked OFF for 2026-09-07. Please ensure shift coverage."))
			Expect(toasts[0].Severity).To(Equal(notification.SeverityWarning))
		})
	})

	Describe("auto-fill completed", func() {
		It("should report coverage gaps with short day labels", func() {
			// When
			err := bus.PublishSync(ctx, events.AutoFillCompleted(3, []string{"2026-09-09"}))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Coverage Alert"))
			Expect(toasts[0].Message).To(Equal("Insufficient doctor coverage for: Wed, 9/9. All available doctors are marked OFF."))
			Expect(toasts[0].Severity).To(Equal(notification.SeverityError))
		})

		It("should celebrate a gap-free fill", func() {
			// When
			err := bus.PublishSync(ctx, events.AutoFillCompleted(12, nil))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Schedule Optimized"))
			Expect(toasts[0].Message).To(Equal("Auto-filled 12 shifts. Priority given to filling doctor shortages."))
			Expect(toasts[0].Severity).To(Equal(notification.SeveritySuccess))
		})

		It("should note when nothing changed", func() {
			// When
			err := bus.PublishSync(ctx, events.AutoFillCompleted(0, nil))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("No Changes"))
			Expect(toasts[0].Message).To(Equal("Schedule is already fully populated."))
		})
	})

	Describe("swap lifecycle", func() {
		It("should guide the selection flow with toasts", func() {
			// When
			Expect(bus.PublishSync(ctx, events.SwapSourceSelected())).To(Succeed())
			Expect(bus.PublishSync(ctx, events.SwapSelectionCancelled())).To(Succeed())
			Expect(bus.PublishSync(ctx, events.SwapProposed())).To(Succeed())

			// Then
			titles := make([]string, 0, 3)
			for _, t := range activeToasts() {
				titles = append(titles, t.Title)
			}
			Expect(titles).To(ConsistOf("Swap Source Selected", "Selection Cancelled", "Swap Proposed"))
		})

		It("should notify both participants of an approval", func() {
			// When
			err := bus.PublishSync(ctx, events.SwapApproved(
				"nurse-1", "James Wilson", "doc-1", "Sarah Chen", "2026-09-07", "2026-09-08"))

			// Then
			Expect(err).ToNot(HaveOccurred())

			requesterInbox, err := service.ListForUser("nurse-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(requesterInbox).To(HaveLen(1))
			Expect(requesterInbox[0].Title).To(Equal("Shift Swap Approved"))
			Expect(requesterInbox[0].Message).To(Equal("Your swap request with Sarah Chen for 2026-09-07 has been approved."))
			Expect(requesterInbox[0].Category).To(Equal(notification.CategorySuccess))

			targetInbox, err := service.ListForUser("doc-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(targetInbox).To(HaveLen(1))
			Expect(targetInbox[0].Message).To(Equal("Your shift on 2026-09-08 has been swapped with James Wilson."))

			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Swap Approved"))
		})

		It("should notify both participants of a rejection", func() {
			// When
			err := bus.PublishSync(ctx, events.SwapRejected("nurse-1", "doc-1", "2026-09-07", "2026-09-08"))

			// Then
			Expect(err).ToNot(HaveOccurred())

			requesterInbox, err := service.ListForUser("nurse-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(requesterInbox).To(HaveLen(1))
			Expect(requesterInbox[0].Message).To(Equal("Your swap request for 2026-09-07 has been rejected."))
			Expect(requesterInbox[0].Category).To(Equal(notification.CategoryAlert))

			targetInbox, err := service.ListForUser("doc-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(targetInbox).To(HaveLen(1))
			Expect(targetInbox[0].Message).To(Equal("The proposed swap for your shift on 2026-09-08 has been rejected."))
		})
	})

	Describe("leave lifecycle", func() {
		It("should confirm a submission with a toast", func() {
			// When
			err := bus.PublishSync(ctx, events.LeaveSubmitted("nurse-1"))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Request Submitted"))
		})

		It("should notify the requester of an approval", func() {
			// When
			err := bus.PublishSync(ctx, events.LeaveApproved("nurse-1", "James Wilson", "2026-09-10", "2026-09-12", false))

			// Then
			Expect(err).ToNot(HaveOccurred())
			inbox, err := service.ListForUser("nurse-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(inbox).To(HaveLen(1))
			Expect(inbox[0].Title).To(Equal("Leave Request Approved"))
			Expect(inbox[0].Message).To(Equal("Your leave request from 2026-09-10 to 2026-09-12 has been approved."))
			Expect(activeToasts()).To(BeEmpty())
		})

		It("should additionally broadcast a coverage warning for a doctor", func() {
			// When
			err := bus.PublishSync(ctx, events.LeaveApproved("doc-1", "Sarah Chen", "2026-09-10", "2026-09-12", true))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Alert: Doctor Unavailable"))
			Expect(toasts[0].Message).To(Equal("Dr. Sarah Chen is on approved leave from 2026-09-10 to 2026-09-12."))
		})

		It("should alert the requester of a rejection", func() {
			// When
			err := bus.PublishSync(ctx, events.LeaveRejected("nurse-1", "2026-09-10", "2026-09-12"))

			// Then
			Expect(err).ToNot(HaveOccurred())
			inbox, err := service.ListForUser("nurse-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(inbox).To(HaveLen(1))
			Expect(inbox[0].Title).To(Equal("Leave Request Rejected"))
			Expect(inbox[0].Category).To(Equal(notification.CategoryAlert))
		})
	})

	Describe("staff directory changes", func() {
		It("should confirm an onboarding", func() {
			// When
			err := bus.PublishSync(ctx, events.EmployeeOnboarded("James Wilson"))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Employee Onboarded"))
			Expect(toasts[0].Message).To(Equal("James Wilson has been successfully added to the system."))
			Expect(toasts[0].Severity).To(Equal(notification.SeveritySuccess))
		})

		It("should confirm a profile update", func() {
			// When
			err := bus.PublishSync(ctx, events.EmployeeUpdated("Sarah Chen"))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Employee Updated"))
			Expect(toasts[0].Message).To(Equal("Sarah Chen's details have been updated."))
		})

		It("should confirm a removal", func() {
			// When
			err := bus.PublishSync(ctx, events.EmployeeRemoved())

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Employee Removed"))
			Expect(toasts[0].Message).To(Equal("Staff member has been permanently removed from the system."))
		})

		It("should confirm a status change", func() {
			// When
			err := bus.PublishSync(ctx, events.EmployeeStatusChanged("On Break"))

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Status Updated"))
			Expect(toasts[0].Message).To(Equal("Employee status changed to On Break"))
		})

		It("should confirm a credentials change", func() {
			// When
			err := bus.PublishSync(ctx, events.CredentialsUpdated())

			// Then
			Expect(err).ToNot(HaveOccurred())
			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Title).To(Equal("Credentials Updated"))
			Expect(toasts[0].Message).To(Equal("User access details have been updated successfully."))
		})
	})

	Describe("emergency dispatch", func() {
		It("should alert each dispatched employee and broadcast a summary", func() {
			// When
			Expect(bus.PublishSync(ctx, events.EmergencyDispatched("nurse-1", "James Wilson"))).To(Succeed())
			Expect(bus.PublishSync(ctx, events.EmergencyDispatched("doc-1", "Sarah Chen"))).To(Succeed())
			Expect(bus.PublishSync(ctx, events.EmergencyDispatchCompleted(2))).To(Succeed())

			// Then
			inbox, err := service.ListForUser("nurse-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(inbox).To(HaveLen(1))
			Expect(inbox[0].Title).To(Equal("URGENT: EMERGENCY ALERT"))
			Expect(inbox[0].Message).To(Equal("Immediate assistance required. Please report to station."))

			toasts := activeToasts()
			Expect(toasts).To(HaveLen(1))
			Expect(toasts[0].Message).To(Equal("Dispatched alerts to top 2 nearest staff members."))
			Expect(toasts[0].Severity).To(Equal(notification.SeverityError))
		})
	})
})
