package driver

import (
	"time"

	"quasicode/internal/observ"
	"quasicode/internal/trace"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Note    string
}

// PhaseObserver receives phase events emitted during analysis.
type PhaseObserver func(PhaseEvent)

// phases keeps the timer, the observer and the trace in step.
type phases struct {
	timer    *observ.Timer
	observer PhaseObserver
	tracer   trace.Tracer
	parent   uint64
}

type openPhase struct {
	name    string
	idx     int
	span    *trace.Span
	started time.Time
}

func (p phases) begin(name string) openPhase {
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return openPhase{
		name:    name,
		idx:     p.timer.Begin(name),
		span:    trace.Begin(p.tracer, trace.ScopePass, name, p.parent),
		started: time.Now(),
	}
}

func (p phases) end(op openPhase, note string) {
	p.timer.End(op.idx, note)
	op.span.End(note)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: op.name, Status: PhaseEnd, Elapsed: time.Since(op.started), Note: note})
	}
}
