package paging_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/keyset-go"
)

var _ = Describe("BuildPredicate", func() {
	It("rejects an empty sort set", func() {
		_, err := paging.BuildPredicate(paging.SortSet{}, paging.CursorPayload{})
		Expect(err).To(HaveOccurred())
	})

	It("builds a simple strict inequality for a single-column ascending sort", func() {
		sorts := paging.SortSet{{Column: "id", Direction: paging.Asc}}
		payload := paging.CursorPayload{K: map[string]paging.Value{"id": paging.IntValue(5)}}

		pred, err := paging.BuildPredicate(sorts, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(pred.Kind).To(Equal(paging.PredCmp))
		Expect(pred.Column).To(Equal("id"))
		Expect(pred.Op).To(Equal(paging.OpGT))
	})

	It("uses strict less-than for the tie-breaker under descending order", func() {
		sorts := paging.SortSet{{Column: "id", Direction: paging.Desc}}
		payload := paging.CursorPayload{K: map[string]paging.Value{"id": paging.IntValue(5)}}

		pred, err := paging.BuildPredicate(sorts, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(pred.Op).To(Equal(paging.OpLT))
	})

	It("fails cleanly when the payload omits a key the sort set expects", func() {
		sorts := paging.SortSet{{Column: "id", Direction: paging.Asc}}
		payload := paging.CursorPayload{K: map[string]paging.Value{}}

		_, err := paging.BuildPredicate(sorts, payload)
		Expect(err).To(HaveOccurred())

		var pe *paging.PaginationError
		Expect(err).To(BeAssignableToTypeOf(pe))
		Expect(err.(*paging.PaginationError).Code).To(Equal(paging.CodeInvalidToken))
	})

	It("builds the two-column OR-of-(strict, equal-and-next) form for non-null boundaries", func() {
		sorts := paging.SortSet{
			{Column: "created_at", Direction: paging.Asc},
			{Column: "id", Direction: paging.Asc},
		}
		payload := paging.CursorPayload{K: map[string]paging.Value{
			"created_at": paging.IntValue(100),
			"id":         paging.IntValue(5),
		}}

		pred, err := paging.BuildPredicate(sorts, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(pred.Kind).To(Equal(paging.PredOr))
		Expect(pred.Children).To(HaveLen(2))
		Expect(pred.Children[0].Kind).To(Equal(paging.PredCmp))
		Expect(pred.Children[0].Column).To(Equal("created_at"))
		Expect(pred.Children[1].Kind).To(Equal(paging.PredAnd))
	})

	It("appends an IS NULL disjunct for a descending non-null boundary (NULLS LAST)", func() {
		sorts := paging.SortSet{
			{Column: "rating", Direction: paging.Desc},
			{Column: "id", Direction: paging.Asc},
		}
		payload := paging.CursorPayload{K: map[string]paging.Value{
			"rating": paging.IntValue(3),
			"id":     paging.IntValue(5),
		}}

		pred, err := paging.BuildPredicate(sorts, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(pred.Kind).To(Equal(paging.PredOr))
		Expect(pred.Children).To(HaveLen(3))
		last := pred.Children[2]
		Expect(last.Kind).To(Equal(paging.PredIsNull))
		Expect(last.Column).To(Equal("rating"))
	})

	It("does not append an IS NULL disjunct for an ascending non-null boundary", func() {
		sorts := paging.SortSet{
			{Column: "rating", Direction: paging.Asc},
			{Column: "id", Direction: paging.Asc},
		}
		payload := paging.CursorPayload{K: map[string]paging.Value{
			"rating": paging.IntValue(3),
			"id":     paging.IntValue(5),
		}}

		pred, err := paging.BuildPredicate(sorts, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(pred.Children).To(HaveLen(2))
	})

	It("handles a null ascending boundary as (IS NULL AND next) OR IS NOT NULL", func() {
		sorts := paging.SortSet{
			{Column: "rating", Direction: paging.Asc},
			{Column: "id", Direction: paging.Asc},
		}
		payload := paging.CursorPayload{K: map[string]paging.Value{
			"rating": paging.Null(),
			"id":     paging.IntValue(5),
		}}

		pred, err := paging.BuildPredicate(sorts, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(pred.Kind).To(Equal(paging.PredOr))
		Expect(pred.Children).To(HaveLen(2))
		Expect(pred.Children[0].Kind).To(Equal(paging.PredAnd))
		Expect(pred.Children[1].Kind).To(Equal(paging.PredIsNotNull))
	})

	It("handles a null descending boundary as just (IS NULL AND next)", func() {
		sorts := paging.SortSet{
			{Column: "rating", Direction: paging.Desc},
			{Column: "id", Direction: paging.Asc},
		}
		payload := paging.CursorPayload{K: map[string]paging.Value{
			"rating": paging.Null(),
			"id":     paging.IntValue(5),
		}}

		pred, err := paging.BuildPredicate(sorts, payload)
		Expect(err).ToNot(HaveOccurred())
		Expect(pred.Kind).To(Equal(paging.PredAnd))
		Expect(pred.Children[0].Kind).To(Equal(paging.PredIsNull))
	})
})

var _ = Describe("Predicate constructors", func() {
	It("builds comparison, null, and not-null leaves", func() {
		Expect(paging.Cmp("id", paging.OpGT, paging.IntValue(1)).Kind).To(Equal(paging.PredCmp))
		Expect(paging.IsNull("id").Kind).To(Equal(paging.PredIsNull))
		Expect(paging.IsNotNull("id").Kind).To(Equal(paging.PredIsNotNull))
	})

	It("builds And/Or with their children in order", func() {
		a := paging.Cmp("a", paging.OpEQ, paging.IntValue(1))
		b := paging.Cmp("b", paging.OpEQ, paging.IntValue(2))
		Expect(paging.And(a, b).Children).To(Equal([]paging.Predicate{a, b}))
		Expect(paging.Or(a, b).Children).To(Equal([]paging.Predicate{a, b}))
	})
})
