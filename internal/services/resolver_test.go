package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/services"
)

var _ = Describe("Resolver", func() {
	var (
		ctx    context.Context
		runner *fakeRunner
		r      *services.Resolver
	)

	BeforeEach(func() {
		ctx = context.Background()
		runner = &fakeRunner{}
		r = services.NewResolver(runner)
	})

	Describe("ResolveItemNames", func() {
		// Given no identifiers
		// When resolution runs
		// Then it should return empty without issuing SQL
		It("should short-circuit on empty ids", func() {
			names, err := r.ResolveItemNames(ctx, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())
			Expect(runner.calls()).To(BeZero())
		})

		// Given identifiers matching reference rows
		// When resolution runs
		// Then the canonical names should come back trimmed
		It("should resolve ids to trimmed names", func() {
			runner.queue([]models.Row{{" Safety Gloves "}, {"Mooring Rope"}}, nil)

			names, err := r.ResolveItemNames(ctx, []int64{11, 42})

			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"Safety Gloves", "Mooring Rope"}))
			Expect(runner.calls()).To(Equal(1))
			Expect(runner.statements[0].Columns).To(Equal(1))
			Expect(runner.statements[0].Args).To(ContainElements(int64(11), int64(42)))
		})

		// Given identifiers with no reference match
		// When resolution runs
		// Then unresolved ids should be dropped silently, empty results
		// included
		It("should drop unresolved ids without error", func() {
			runner.queue(nil, nil)

			names, err := r.ResolveItemNames(ctx, []int64{999})

			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())
		})

		It("should skip blank resolved names", func() {
			runner.queue([]models.Row{{"  "}, {"Mooring Rope"}}, nil)

			names, err := r.ResolveItemNames(ctx, []int64{1, 2})

			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"Mooring Rope"}))
		})
	})

	Describe("ResolvePortNames", func() {
		It("should resolve port ids against the port reference view", func() {
			runner.queue([]models.Row{{"Rotterdam"}}, nil)

			names, err := r.ResolvePortNames(ctx, []int64{31})

			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"Rotterdam"}))
			Expect(runner.statements[0].SQL).To(ContainSubstring("ref_ports"))
		})
	})
})
