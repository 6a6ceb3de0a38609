package ensemble_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boolsim/internal/boolnet"
	"github.com/san-kum/boolsim/internal/ensemble"
)

func chainNetwork() boolnet.Network {
	return boolnet.Network{
		"Input": {Name: "Input", IsInput: true},
		"Mid":   {Name: "Mid", Rule: "Input"},
		"Out":   {Name: "Out", Rule: "Mid & !Input"},
	}
}

var _ = Describe("Run", func() {
	var net boolnet.Network

	BeforeEach(func() {
		net = chainNetwork()
	})

	base := func() ensemble.Params {
		return ensemble.Params{
			Target:     "Mid",
			Discipline: "lockstep",
			Steps:      5,
			Runs:       100,
			Seed:       42,
			Workers:    4,
			Fixed:      map[string]bool{"Input": true},
		}
	}

	Describe("a target wired to a pinned-true input", func() {
		for _, discipline := range []string{"async", "sync", "seidel", "lockstep"} {
			discipline := discipline
			It("reaches 100% ON under "+discipline, func() {
				p := base()
				p.Discipline = discipline
				res, err := ensemble.Run(context.Background(), net, p)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Runs).To(HaveLen(100))
				Expect(res.OnCount).To(Equal(100))
				Expect(res.OnPercent).To(Equal(100.0))
			})
		}
	})

	Describe("reproducibility", func() {
		It("yields bit-identical run sequences for the same seed", func() {
			p := base()
			p.Fixed = nil
			p.Target = "Out"

			first, err := ensemble.Run(context.Background(), net, p)
			Expect(err).NotTo(HaveOccurred())
			second, err := ensemble.Run(context.Background(), net, p)
			Expect(err).NotTo(HaveOccurred())

			Expect(second.Runs).To(Equal(first.Runs))
			Expect(second.Cumulative).To(Equal(first.Cumulative))
		})

		It("is independent of the worker count", func() {
			p := base()
			p.Fixed = nil
			p.Target = "Out"

			p.Workers = 1
			sequential, err := ensemble.Run(context.Background(), net, p)
			Expect(err).NotTo(HaveOccurred())

			p.Workers = 8
			parallel, err := ensemble.Run(context.Background(), net, p)
			Expect(err).NotTo(HaveOccurred())

			Expect(parallel.Runs).To(Equal(sequential.Runs))
		})
	})

	Describe("aggregation", func() {
		It("builds the cumulative ON% series over the run sequence", func() {
			p := base()
			res, err := ensemble.Run(context.Background(), net, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Cumulative).To(HaveLen(100))
			Expect(res.Cumulative[len(res.Cumulative)-1]).To(Equal(res.OnPercent))
		})

		It("reports each node's most frequent final state", func() {
			p := base()
			res, err := ensemble.Run(context.Background(), net, p)
			Expect(err).NotTo(HaveOccurred())

			byName := map[string]ensemble.NodeStat{}
			for _, stat := range res.Nodes {
				byName[stat.Name] = stat
			}
			Expect(byName["Input"].State).To(BeTrue())
			Expect(byName["Input"].Percent).To(Equal(100.0))
			Expect(byName["Mid"].State).To(BeTrue())
			Expect(byName["Out"].State).To(BeFalse())
			Expect(byName["Out"].Percent).To(Equal(100.0))
		})
	})

	Describe("caller contract", func() {
		It("rejects an unknown target", func() {
			p := base()
			p.Target = "Ghost"
			_, err := ensemble.Run(context.Background(), net, p)
			Expect(errors.Is(err, boolnet.ErrUnknownNode)).To(BeTrue())
		})

		It("rejects an unknown fixed node", func() {
			p := base()
			p.Fixed = map[string]bool{"Ghost": true}
			_, err := ensemble.Run(context.Background(), net, p)
			Expect(errors.Is(err, boolnet.ErrUnknownNode)).To(BeTrue())
		})

		It("rejects an unknown set node", func() {
			p := base()
			p.Set = map[string]bool{"Ghost": true}
			_, err := ensemble.Run(context.Background(), net, p)
			Expect(errors.Is(err, boolnet.ErrUnknownNode)).To(BeTrue())
		})

		It("rejects an unknown discipline", func() {
			p := base()
			p.Discipline = "quantum"
			_, err := ensemble.Run(context.Background(), net, p)
			Expect(errors.Is(err, boolnet.ErrUnknownDiscipline)).To(BeTrue())
		})

		It("rejects non-positive steps and runs", func() {
			p := base()
			p.Steps = 0
			_, err := ensemble.Run(context.Background(), net, p)
			Expect(err).To(HaveOccurred())

			p = base()
			p.Runs = 0
			_, err = ensemble.Run(context.Background(), net, p)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("early termination", func() {
		It("stops once the convergence diagnostic is satisfied", func() {
			p := base()
			p.Runs = 10000
			p.Workers = 1
			p.Epsilon = 5.0
			p.Window = 20

			res, err := ensemble.Run(context.Background(), net, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(len(res.Runs)).To(BeNumerically(">=", p.Window))
			Expect(len(res.Runs)).To(BeNumerically("<", p.Runs))
		})

		It("fails cleanly when cancelled before any run completes", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := ensemble.Run(ctx, net, base())
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("soft failures", func() {
		It("counts missing references without aborting", func() {
			broken := boolnet.Network{
				"A": {Name: "A", Rule: "Ghost | B"},
				"B": {Name: "B", IsInput: true},
			}
			p := ensemble.Params{
				Target:     "A",
				Discipline: "lockstep",
				Steps:      3,
				Runs:       10,
				Seed:       1,
				Workers:    1,
			}
			res, err := ensemble.Run(context.Background(), broken, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.MissingRefs).To(BeNumerically(">", 0))
		})

		It("counts malformed rules without aborting", func() {
			broken := boolnet.Network{
				"A": {Name: "A", Rule: "B &"},
				"B": {Name: "B", IsInput: true},
			}
			p := ensemble.Params{
				Target:     "A",
				Discipline: "lockstep",
				Steps:      3,
				Runs:       10,
				Seed:       1,
				Workers:    1,
			}
			res, err := ensemble.Run(context.Background(), broken, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.EvalFailures).To(BeNumerically(">", 0))
			for _, run := range res.Runs {
				Expect(run.Final["A"]).To(BeFalse())
			}
		})
	})
})
