package sqlboiler_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/keyset-go"
	"github.com/nrfta/keyset-go/sqlboiler"
)

type fakeModel struct {
	ID int
}

var _ = Describe("Query", func() {
	var capturedMods []qm.QueryMod

	exec := func(ctx context.Context, mods ...qm.QueryMod) ([]*fakeModel, error) {
		capturedMods = mods
		return []*fakeModel{{ID: 1}, {ID: 2}}, nil
	}
	toRow := func(m *fakeModel) paging.Row {
		return paging.Row{"id": m.ID}
	}

	BeforeEach(func() {
		capturedMods = nil
	})

	It("projects executed rows through toRow", func() {
		q := sqlboiler.New(exec, toRow)
		rows, err := q.Execute(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0]["id"]).To(Equal(1))
		Expect(rows[1]["id"]).To(Equal(2))
	})

	It("is immutable across builder calls (copy-on-write)", func() {
		base := sqlboiler.New(exec, toRow)
		withLimit := base.Limit(10)

		Expect(base).ToNot(BeIdenticalTo(withLimit))

		_, err := base.Execute(context.Background())
		Expect(err).ToNot(HaveOccurred())
		baseMods := capturedMods

		_, err = withLimit.Execute(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(capturedMods).ToNot(Equal(baseMods))
	})

	It("accumulates order, where, limit and offset into query mods", func() {
		q := sqlboiler.New(exec, toRow).
			OrderBy("id", false, paging.NullsFirst).
			Where(paging.Cmp("id", paging.OpGT, paging.IntValue(1))).
			Limit(5).
			Offset(2)

		_, err := q.Execute(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(capturedMods).To(HaveLen(3))
	})

	It("uses Top as an alias for Limit", func() {
		q := sqlboiler.New(exec, toRow).Top(7)
		_, err := q.Execute(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(capturedMods).To(HaveLen(1))
	})
})
