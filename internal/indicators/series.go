package indicators

import "math"

// Rolling-window helpers shared by the calculators. All of them produce a
// series the same length as the input, with NaN wherever the trailing
// window is incomplete or contains NaN. Summation runs left-to-right over
// the window so that recomputation is bit-identical.

func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

func windowHasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func windowMean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func rollingMean(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		if windowHasNaN(window) {
			continue
		}
		out[i] = windowMean(window)
	}
	return out
}

func rollingSum(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		if windowHasNaN(window) {
			continue
		}
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		out[i] = sum
	}
	return out
}

// rollingStd computes the sample standard deviation (n-1 denominator)
// over the trailing window.
func rollingStd(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period < 2 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		if windowHasNaN(window) {
			continue
		}
		mean := windowMean(window)
		sumSq := 0.0
		for _, v := range window {
			d := v - mean
			sumSq += d * d
		}
		out[i] = math.Sqrt(sumSq / float64(period-1))
	}
	return out
}

func rollingMin(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		if windowHasNaN(window) {
			continue
		}
		min := window[0]
		for _, v := range window[1:] {
			if v < min {
				min = v
			}
		}
		out[i] = min
	}
	return out
}

func rollingMax(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		if windowHasNaN(window) {
			continue
		}
		max := window[0]
		for _, v := range window[1:] {
			if v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}

// emaSeries computes an exponential moving average seeded with the simple
// mean of the first full window of defined values, then folded forward
// recursively. Defined values must be contiguous once they start; rows
// before the seed stay NaN. The recurrence state is the previous output
// value, carried explicitly through the loop.
func emaSeries(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	alpha := 2.0 / (float64(period) + 1.0)

	// Find the first defined input row.
	start := -1
	for i, v := range values {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}
	if start < 0 || start+period > len(values) {
		return out
	}

	seed := windowMean(values[start : start+period])
	out[start+period-1] = seed

	prev := seed
	for i := start + period; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}
