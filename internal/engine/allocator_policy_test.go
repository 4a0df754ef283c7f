package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pagesim/internal/engine"
	"github.com/sarchlab/pagesim/internal/memory"
	"github.com/sarchlab/pagesim/internal/replacement/mockreplacement"
)

// These exercise the engine against a mocked replacement.Policy rather
// than a real one, confirming the allocator only ever consults the policy
// once the free list is actually empty, and defers the victim choice to
// it exactly as spec.md §4.1 requires.
var _ = Describe("Engine against a mocked replacement policy", func() {
	var (
		ctrl   *gomock.Controller
		policy *mockreplacement.MockPolicy
		sink   *recordingSink
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		policy = mockreplacement.NewMockPolicy(ctrl)
		sink = &recordingSink{}
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("never consults the policy while a free frame remains", func() {
		procs := []*memory.Process{
			memory.NewProcess(0, []memory.VMA{{StartVPage: 0, EndVPage: 1}}),
		}
		e := engine.New(procs, 2, policy, sink)

		// The fault handler resets the filled frame's age on every fault-in;
		// SelectVictim has no expectation, so any call to it fails the test.
		policy.EXPECT().ResetAge(0)

		run(e, []engine.Instruction{
			{Op: 'c', Value: 0},
			{Op: 'r', Value: 0},
		})

		Expect(e.Processes[0].Maps).To(Equal(uint64(1)))
	})

	It("delegates the victim choice to the policy once frames run out", func() {
		procs := []*memory.Process{
			memory.NewProcess(0, []memory.VMA{{StartVPage: 0, EndVPage: 1}}),
		}
		e := engine.New(procs, 1, policy, sink)

		policy.EXPECT().
			SelectVictim(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0)
		policy.EXPECT().ResetAge(0).Times(2)

		run(e, []engine.Instruction{
			{Op: 'c', Value: 0},
			{Op: 'r', Value: 0},
			{Op: 'r', Value: 1},
		})

		Expect(e.Processes[0].Maps).To(Equal(uint64(2)))
		Expect(e.Processes[0].Unmaps).To(Equal(uint64(1)))
	})
})
