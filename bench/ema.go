package bench

// ema is an exponential moving average, adapted from the teacher's discarded
// sat.EMA scaffold into a rolling smoother for per-instance solve times: a
// benchmark sweep's durations are noisy from one instance to the next, and a
// raw mean would let one pathological instance dominate a running total.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 {
	return e.value
}
