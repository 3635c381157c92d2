package corosort_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/sysprog/corosort"
)

var _ = Describe("SortedRun", func() {
	It("keeps a strictly ordered array across insertions", func() {
		r := corosort.NewSortedRun()
		for _, v := range []int64{3, 1, 2} {
			r.Insert(v)
		}

		Expect(r.Len()).To(Equal(3))
		Expect(r.At(0)).To(Equal(int64(1)))
		Expect(r.At(1)).To(Equal(int64(2)))
		Expect(r.At(2)).To(Equal(int64(3)))
	})

	It("permits duplicates", func() {
		r := corosort.NewSortedRun()
		for _, v := range []int64{5, 5, 1, 5} {
			r.Insert(v)
		}

		Expect(r.Len()).To(Equal(4))
		Expect(r.At(0)).To(Equal(int64(1)))
		Expect(r.At(1)).To(Equal(int64(5)))
		Expect(r.At(2)).To(Equal(int64(5)))
		Expect(r.At(3)).To(Equal(int64(5)))
	})

	It("grows past the initial capacity of 4", func() {
		r := corosort.NewSortedRun()
		for i := int64(0); i < 50; i++ {
			r.Insert(50 - i)
		}

		Expect(r.Len()).To(Equal(50))
		for i := 0; i < 50; i++ {
			Expect(r.At(i)).To(Equal(int64(i + 1)))
		}
	})

	It("handles negative values", func() {
		r := corosort.NewSortedRun()
		for _, v := range []int64{3, -1, 0, -5} {
			r.Insert(v)
		}

		Expect(r.At(0)).To(Equal(int64(-5)))
		Expect(r.At(1)).To(Equal(int64(-1)))
		Expect(r.At(2)).To(Equal(int64(0)))
		Expect(r.At(3)).To(Equal(int64(3)))
	})
})
