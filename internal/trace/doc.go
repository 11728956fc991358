// Package trace records the phases of an analysis run.
//
// A run opens one driver span, one span per pass (resolve, returns) and, at
// the debug level, one span per class or function the resolver visits:
//
//	qsc check --trace=- --trace-level=pass program.yaml
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "resolve", parentID)
//	defer span.End("")
//
// StreamTracer writes each event as it happens, RingTracer keeps the most
// recent events for a dump after a failure, and MultiTracer combines them.
package trace
