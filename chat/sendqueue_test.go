package chat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysprog/chat"
)

var _ = Describe("SendQueue", func() {
	It("is empty until something is enqueued", func() {
		var q chat.SendQueue
		Expect(q.Empty()).To(BeTrue())
		_, ok := q.Pending()
		Expect(ok).To(BeFalse())
	})

	It("reports the unsent remainder of the head chunk and advances on RecordSent", func() {
		var q chat.SendQueue
		q.Enqueue([]byte("abcdef"))

		data, ok := q.Pending()
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte("abcdef")))

		q.RecordSent(4)
		data, ok = q.Pending()
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte("ef")))
		Expect(q.Empty()).To(BeFalse())

		q.RecordSent(2)
		Expect(q.Empty()).To(BeTrue())
	})

	It("moves to the next chunk once the head drains", func() {
		var q chat.SendQueue
		q.Enqueue([]byte("ab"))
		q.Enqueue([]byte("cd"))

		q.RecordSent(2)
		data, ok := q.Pending()
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal([]byte("cd")))
	})
})
