package spectrum_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/integrators"
	"github.com/san-kum/sdofsim/internal/metrics"
	"github.com/san-kum/sdofsim/internal/spectrum"
)

func wave(n int, dt float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		t := float64(i) * dt
		w[i] = math.Sin(2*math.Pi*t/0.4) * math.Exp(-t)
	}
	return w
}

var _ = Describe("Sweep", func() {
	var (
		cfg        spectrum.Config
		excitation []float64
	)

	BeforeEach(func() {
		cfg = spectrum.Config{
			PeriodLow:     0.1,
			PeriodHigh:    2.0,
			Divisions:     10,
			Damping:       0.05,
			Dt:            0.01,
			Beta:          dynamo.BetaAverage,
			Steps:         400,
			ReferenceMass: 10,
			Workers:       3,
		}
		excitation = wave(cfg.Steps, cfg.Dt)
	})

	Context("with a valid period range", func() {
		It("returns divisions+1 finite, non-negative ordinates per channel", func() {
			spec, err := spectrum.Sweep(context.Background(), cfg, excitation)
			Expect(err).NotTo(HaveOccurred())
			Expect(spec.Len()).To(Equal(11))

			for _, c := range spectrum.Channels {
				ys := spec.Channel(c)
				Expect(ys).To(HaveLen(11))
				for _, y := range ys {
					Expect(math.IsNaN(y) || math.IsInf(y, 0)).To(BeFalse())
					Expect(y).To(BeNumerically(">=", 0))
				}
			}
		})

		It("spans the range inclusively", func() {
			spec, err := spectrum.Sweep(context.Background(), cfg, excitation)
			Expect(err).NotTo(HaveOccurred())
			Expect(spec.Periods[0]).To(Equal(0.1))
			Expect(spec.Periods[10]).To(BeNumerically("~", 2.0, 1e-12))
		})

		It("records the peak of an independent run at each period", func() {
			spec, err := spectrum.Sweep(context.Background(), cfg, excitation)
			Expect(err).NotTo(HaveOccurred())

			for i, period := range spec.Periods {
				p, err := cfg.Params(period)
				Expect(err).NotTo(HaveOccurred())
				res, err := integrators.Newmark(p, excitation)
				Expect(err).NotTo(HaveOccurred())

				Expect(spec.Acceleration[i]).To(Equal(metrics.PeakAbs(res.Acceleration)))
				Expect(spec.Velocity[i]).To(Equal(metrics.PeakAbs(res.Velocity)))
				Expect(spec.Displacement[i]).To(Equal(metrics.PeakAbs(res.Displacement)))
				Expect(spec.Energy[i]).To(Equal(metrics.PeakAbs(res.Total)))
			}
		})

		It("does not depend on the worker count", func() {
			cfg.Workers = 1
			serial, err := spectrum.Sweep(context.Background(), cfg, excitation)
			Expect(err).NotTo(HaveOccurred())

			cfg.Workers = 8
			parallel, err := spectrum.Sweep(context.Background(), cfg, excitation)
			Expect(err).NotTo(HaveOccurred())

			Expect(parallel).To(Equal(serial))
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			spec, err := spectrum.Sweep(ctx, cfg, excitation)
			Expect(err).To(MatchError(context.Canceled))
			Expect(spec).To(BeNil())
		})
	})

	DescribeTable("an invalid period range yields an empty spectrum",
		func(low, high float64) {
			cfg.PeriodLow, cfg.PeriodHigh = low, high

			spec, err := spectrum.Sweep(context.Background(), cfg, excitation)
			Expect(err).To(MatchError(dynamo.ErrEmptyRange))
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
			Expect(spec).NotTo(BeNil())
			Expect(spec.Len()).To(BeZero())
			Expect(spec.Acceleration).To(BeEmpty())
			Expect(spec.Energy).To(BeEmpty())
		},
		Entry("equal bounds", 1.0, 1.0),
		Entry("decreasing", 2.0, 0.1),
		Entry("zero low", 0.0, 1.0),
		Entry("negative low", -0.5, 1.0),
	)

	DescribeTable("other invalid arguments are rejected without output",
		func(mod func(*spectrum.Config, *[]float64)) {
			mod(&cfg, &excitation)

			spec, err := spectrum.Sweep(context.Background(), cfg, excitation)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
			Expect(err).NotTo(MatchError(dynamo.ErrEmptyRange))
			Expect(spec).To(BeNil())
		},
		Entry("zero divisions", func(c *spectrum.Config, _ *[]float64) { c.Divisions = 0 }),
		Entry("too many divisions", func(c *spectrum.Config, _ *[]float64) { c.Divisions = 1 << 62 }),
		Entry("zero steps", func(c *spectrum.Config, _ *[]float64) { c.Steps = 0 }),
		Entry("short excitation", func(_ *spectrum.Config, w *[]float64) { *w = (*w)[:10] }),
		Entry("zero reference mass", func(c *spectrum.Config, _ *[]float64) { c.ReferenceMass = 0 }),
		Entry("zero dt", func(c *spectrum.Config, _ *[]float64) { c.Dt = 0 }),
	)
})
