package results

import "gonum.org/v1/gonum/stat"

// CapacityEnvelope is the statistical distribution of a repeated capacity
// measurement (e.g. max-flow value between one source/sink pair) across
// Monte Carlo iterations — spec §6 CapacityEnvelope.
type CapacityEnvelope struct {
	Source      string
	Sink        string
	Mode        string
	Frequencies map[float64]int
	Min         float64
	Max         float64
	Mean        float64
	Stdev       float64
}

// BuildCapacityEnvelope aggregates samples (one capacity value per Monte
// Carlo iteration) into a CapacityEnvelope, using gonum's stat.Mean/
// stat.StdDev for the mean/stdev fields rather than hand-rolled
// accumulators.
func BuildCapacityEnvelope(source, sink, mode string, samples []float64) CapacityEnvelope {
	env := CapacityEnvelope{
		Source:      source,
		Sink:        sink,
		Mode:        mode,
		Frequencies: make(map[float64]int, len(samples)),
	}
	if len(samples) == 0 {
		return env
	}

	env.Min, env.Max = samples[0], samples[0]
	for _, v := range samples {
		env.Frequencies[v]++
		if v < env.Min {
			env.Min = v
		}
		if v > env.Max {
			env.Max = v
		}
	}

	env.Mean = stat.Mean(samples, nil)
	if len(samples) >= 2 {
		env.Stdev = stat.StdDev(samples, nil)
	}
	return env
}
