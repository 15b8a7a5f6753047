package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/store"
	"github.com/portsight/vendor-intel/internal/store/migrations"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

var _ = Describe("QueryHistoryStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	record := func(id string, outcome models.QueryOutcome, createdAt time.Time) models.QueryRecord {
		rec := models.QueryRecord{
			ID:        id,
			SQL:       "SELECT 1",
			Outcome:   outcome,
			RowCount:  1,
			Duration:  25 * time.Millisecond,
			CreatedAt: createdAt,
		}
		if outcome == models.QueryOutcomeError {
			rec.Error = "boom"
			rec.RowCount = 0
		}
		return rec
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Record and List", func() {
		// Given a recorded query
		// When we list the history
		// Then the record should round-trip with outcome and duration intact
		It("should round-trip a record", func() {
			now := time.Now().UTC().Truncate(time.Millisecond)
			err := s.History().Record(ctx, record("q1", models.QueryOutcomeOK, now))
			Expect(err).NotTo(HaveOccurred())

			records, err := s.History().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal("q1"))
			Expect(records[0].Outcome).To(Equal(models.QueryOutcomeOK))
			Expect(records[0].Duration).To(Equal(25 * time.Millisecond))
			Expect(records[0].RowCount).To(Equal(1))
		})

		// Given several records at different times
		// When we list the history
		// Then records should come back newest first
		It("should list newest first", func() {
			base := time.Now().UTC()
			Expect(s.History().Record(ctx, record("old", models.QueryOutcomeOK, base.Add(-2*time.Hour)))).To(Succeed())
			Expect(s.History().Record(ctx, record("mid", models.QueryOutcomeOK, base.Add(-time.Hour)))).To(Succeed())
			Expect(s.History().Record(ctx, record("new", models.QueryOutcomeOK, base))).To(Succeed())

			records, err := s.History().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
			Expect(records[0].ID).To(Equal("new"))
			Expect(records[2].ID).To(Equal("old"))
		})

		// Given mixed outcomes
		// When we filter by outcome
		// Then only matching records should come back
		It("should filter by outcome", func() {
			now := time.Now().UTC()
			Expect(s.History().Record(ctx, record("ok1", models.QueryOutcomeOK, now))).To(Succeed())
			Expect(s.History().Record(ctx, record("err1", models.QueryOutcomeError, now))).To(Succeed())

			records, err := s.History().List(ctx, store.ByOutcome(models.QueryOutcomeError))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal("err1"))
			Expect(records[0].Error).To(Equal("boom"))
		})

		It("should honor limit and offset", func() {
			base := time.Now().UTC()
			for i, id := range []string{"a", "b", "c", "d"} {
				Expect(s.History().Record(ctx, record(id, models.QueryOutcomeOK, base.Add(time.Duration(i)*time.Minute)))).To(Succeed())
			}

			records, err := s.History().List(ctx, store.WithLimit(2), store.WithOffset(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].ID).To(Equal("c"))
			Expect(records[1].ID).To(Equal("b"))
		})

		It("should filter by time with Since", func() {
			base := time.Now().UTC()
			Expect(s.History().Record(ctx, record("ancient", models.QueryOutcomeOK, base.Add(-48*time.Hour)))).To(Succeed())
			Expect(s.History().Record(ctx, record("recent", models.QueryOutcomeOK, base))).To(Succeed())

			records, err := s.History().List(ctx, store.Since(base.Add(-time.Hour)))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal("recent"))
		})
	})

	Context("Prune", func() {
		// Given records older and newer than the retention window
		// When Prune runs
		// Then only records inside the window should remain
		It("should remove records older than the retention window", func() {
			base := time.Now().UTC()
			Expect(s.History().Record(ctx, record("ancient", models.QueryOutcomeOK, base.Add(-40*24*time.Hour)))).To(Succeed())
			Expect(s.History().Record(ctx, record("recent", models.QueryOutcomeOK, base))).To(Succeed())

			Expect(s.History().Prune(ctx, 30)).To(Succeed())

			records, err := s.History().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal("recent"))
		})
	})
})
