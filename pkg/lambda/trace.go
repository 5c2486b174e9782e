package lambda

// TraceEvent records the term as it stood after one contraction.
type TraceEvent struct {
	Step uint64
	Term string
}

// EnableTrace starts recording up to capacity events. Later steps are counted
// in the stats but not recorded.
func (r *Reducer) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.traceBuf = make([]TraceEvent, 0, capacity)
	r.traceCap = capacity
	r.traceOn = true
}

func (r *Reducer) DisableTrace() {
	r.traceOn = false
}

func (r *Reducer) TraceSnapshot() []TraceEvent {
	if !r.traceOn {
		return nil
	}
	res := make([]TraceEvent, len(r.traceBuf))
	copy(res, r.traceBuf)
	return res
}

func (r *Reducer) recordTrace(t Term) {
	if !r.traceOn || len(r.traceBuf) >= r.traceCap {
		return
	}
	r.traceBuf = append(r.traceBuf, TraceEvent{
		Step: r.reductions,
		Term: t.String(),
	})
}
