package memstore_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pushparaj09/medishift-ai/internal/notification"
	"github.com/pushparaj09/medishift-ai/internal/notification/memstore"
)

var _ = Describe("ToastStore", func() {
	addToast := func(store *memstore.ToastStore, title string) *notification.Toast {
		toast := &notification.Toast{Title: title, Message: "m", Severity: notification.SeverityInfo}
		Expect(store.Add(toast)).To(Succeed())
		return toast
	}

	Context("with a short expiry", func() {
		var store *memstore.ToastStore

		BeforeEach(func() {
			store = memstore.NewToastStore(30 * time.Millisecond)
		})

		AfterEach(func() {
			store.Close()
		})

		It("should expire a toast on its own", func() {
			// Given
			addToast(store, "expiring")

			// Then
			Eventually(func() ([]*notification.Toast, error) {
				return store.List()
			}).Within(time.Second).Should(BeEmpty())
		})
	})

	Context("with a long expiry", func() {
		var store *memstore.ToastStore

		BeforeEach(func() {
			store = memstore.NewToastStore(time.Minute)
		})

		AfterEach(func() {
			store.Close()
		})

		It("should keep toasts listed until dismissed", func() {
			// Given
			toast := addToast(store, "sticky")

			toasts, err := store.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(toasts).To(HaveLen(1))

			// When
			Expect(store.Remove(toast.ID)).To(Succeed())

			// Then
			toasts, err = store.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(toasts).To(BeEmpty())
		})

		It("should report a missing toast on dismissal", func() {
			// When
			err := store.Remove("missing")

			// Then
			Expect(err).To(Equal(notification.ErrToastNotFound))
		})

		It("should list toasts oldest first", func() {
			// Given
			first := addToast(store, "first")
			time.Sleep(2 * time.Millisecond)
			second := addToast(store, "second")

			// When
			toasts, err := store.List()

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(toasts).To(HaveLen(2))
			Expect(toasts[0].ID).To(Equal(first.ID))
			Expect(toasts[1].ID).To(Equal(second.ID))
		})

		It("should ignore adds after Close", func() {
			// Given
			store.Close()

			// When
			toast := &notification.Toast{Title: "late", Message: "m", Severity: notification.SeverityInfo}
			Expect(store.Add(toast)).To(Succeed())

			// Then
			toasts, err := store.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(toasts).To(BeEmpty())
		})
	})

})
