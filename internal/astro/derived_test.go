package astro_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
)

var _ = Describe("Derive", func() {
	It("scales the disk radii from the Schwarzschild radius", func() {
		d := astro.Derive(config.DefaultConfig())

		Expect(d.SchwarzschildRadius).To(BeNumerically("~", 0.5, 1e-12))
		Expect(d.InnerRadius).To(BeNumerically("~", 1.5, 1e-12))
		Expect(d.OuterRadius).To(BeNumerically("~", 6.0, 1e-12))
		Expect(d.HoleSize).To(BeNumerically("~", 1.0, 1e-12))
		Expect(d.DistortionDiscSize).To(BeNumerically("~", 12.0, 1e-12))
	})

	It("keeps the inner edge inside the outer edge for every preset", func() {
		for _, p := range config.Presets {
			d := astro.Derive(p)
			Expect(d.InnerRadius).To(BeNumerically("<", d.OuterRadius), p.Name)
			Expect(d.HoleSize).To(BeNumerically("<", d.InnerRadius*2), p.Name)
		}
	})

	It("rolls the camera proportionally to mass", func() {
		Expect(astro.CameraRoll(50)).To(BeNumerically("~", 0.2, 1e-12))
		Expect(astro.Derive(config.DefaultConfig()).Roll).To(BeNumerically("~", 0.04, 1e-12))
	})

	DescribeTable("BaseTemperature",
		func(peak, mass, accretion, expected float64) {
			Expect(astro.BaseTemperature(peak, mass, accretion)).To(BeNumerically("~", expected, 1e-6))
		},
		Entry("reference mass and unit accretion", 10000.0, 10.0, 1.0, 10000.0),
		Entry("sixteen times the mass doubles", 10000.0, 160.0, 1.0, 20000.0),
		Entry("default config", 10000.0, 10.0, 0.1, 10000*math.Pow(0.1, 0.25)),
	)

	It("tracks which edits invalidate GPU resources", func() {
		a := config.DefaultConfig()
		b, _ := a.With(config.VignetteIntensity, 1.7)
		Expect(astro.SameGeometry(a, b)).To(BeTrue())
		Expect(astro.SameGradient(a, b)).To(BeTrue())

		c, _ := a.With(config.AccretionRate, 0.5)
		Expect(astro.SameGeometry(a, c)).To(BeTrue())
		Expect(astro.SameGradient(a, c)).To(BeFalse())

		d, _ := a.With(config.Mass, 20)
		Expect(astro.SameGeometry(a, d)).To(BeFalse())
	})
})

var _ = Describe("CameraShake", func() {
	It("is still at time zero", func() {
		Expect(astro.CameraShake(1, 0).Len()).To(BeNumerically("~", 0, 1e-9))
	})

	It("never exceeds the amplitude on any axis", func() {
		for t := 0.0; t < 200; t += 0.37 {
			v := astro.CameraShake(0.25, t)
			for axis := 0; axis < 3; axis++ {
				Expect(math.Abs(float64(v[axis]))).To(BeNumerically("<=", 0.25+1e-6))
			}
		}
	})

	It("vanishes with zero amplitude", func() {
		Expect(astro.CameraShake(0, 12.3).Len()).To(BeZero())
	})
})

var _ = Describe("TemperatureProfile", func() {
	It("falls from the base temperature at the inner edge", func() {
		d := astro.Derive(config.DefaultConfig())
		profile := astro.TemperatureProfile(d, 16)

		Expect(profile).To(HaveLen(16))
		Expect(profile[0]).To(BeNumerically("~", d.BaseTemperature, 1e-9))
		for i := 1; i < len(profile); i++ {
			Expect(profile[i]).To(BeNumerically("<", profile[i-1]))
		}
		// (1/4)^¾ at the outer edge
		Expect(profile[15]).To(BeNumerically("~", d.BaseTemperature*math.Pow(0.25, 0.75), 1e-6))
	})

	It("always returns both edges", func() {
		Expect(astro.TemperatureProfile(astro.Derive(config.DefaultConfig()), 0)).To(HaveLen(2))
	})
})
