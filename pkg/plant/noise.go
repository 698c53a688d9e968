package plant

import "math/rand/v2"

// NoiseInjector adds bounded uniform noise to a reading.
type NoiseInjector struct {
	params Params
	rng    *rand.Rand
}

// NewNoiseInjector creates a noise injector drawing from rng.
func NewNoiseInjector(p Params, rng *rand.Rand) *NoiseInjector {
	return &NoiseInjector{params: p, rng: rng}
}

// Apply perturbs every channel by at most its configured bound and re-clamps
// the result. With enabled false the reading is returned unchanged.
func (n *NoiseInjector) Apply(reading State, enabled bool) State {
	if !enabled {
		return reading
	}
	b := n.params.Noise
	reading.LevelCM += n.uniform(b.LevelCM)
	reading.TempC += n.uniform(b.TempC)
	reading.PressureKPa += n.uniform(b.PressureKPa)
	reading.InflowLPS += n.uniform(b.InflowLPS)
	reading.OutflowLPS += n.uniform(b.OutflowLPS)
	return reading.Clamp(n.params)
}

// uniform returns a value in [-bound, bound].
func (n *NoiseInjector) uniform(bound float64) float64 {
	if bound <= 0 {
		return 0
	}
	return (n.rng.Float64()*2 - 1) * bound
}
