package memstore_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pushparaj09/medishift-ai/internal/notification"
	"github.com/pushparaj09/medishift-ai/internal/notification/memstore"
)

var _ = Describe("NotificationStore", func() {
	var store *memstore.NotificationStore

	BeforeEach(func() {
		store = memstore.NewNotificationStore()
	})

	It("should list one user's notifications newest first", func() {
		// Given
		old := &notification.UserNotification{TargetUserID: "u1", Title: "old", Timestamp: time.Now().Add(-time.Hour)}
		recent := &notification.UserNotification{TargetUserID: "u1", Title: "recent", Timestamp: time.Now()}
		other := &notification.UserNotification{TargetUserID: "u2", Title: "other", Timestamp: time.Now()}
		Expect(store.Add(old)).To(Succeed())
		Expect(store.Add(recent)).To(Succeed())
		Expect(store.Add(other)).To(Succeed())

		// When
		inbox, err := store.ListForUser("u1")

		// Then
		Expect(err).ToNot(HaveOccurred())
		Expect(inbox).To(HaveLen(2))
		Expect(inbox[0].Title).To(Equal("recent"))
		Expect(inbox[1].Title).To(Equal("old"))
	})

	It("should mark a notification read", func() {
		// Given
		n := &notification.UserNotification{TargetUserID: "u1", Title: "unread"}
		Expect(store.Add(n)).To(Succeed())

		// When
		Expect(store.MarkRead(n.ID)).To(Succeed())

		// Then
		inbox, err := store.ListForUser("u1")
		Expect(err).ToNot(HaveOccurred())
		Expect(inbox[0].IsRead).To(BeTrue())
	})

	It("should report an unknown notification", func() {
		// When
		err := store.MarkRead("missing")

		// Then
		Expect(err).To(Equal(notification.ErrNotificationNotFound))
	})
})
