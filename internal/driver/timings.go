package driver

import (
	"encoding/json"
	"fmt"

	"quasicode/internal/diag"
	"quasicode/internal/observ"
	"quasicode/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	RunID   string               `json:"run_id,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an info diagnostic whose note carries the
// phase report as JSON. It bypasses the bag limit.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.NoSpan,
		fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)).
		WithNote(source.NoSpan, string(data))
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}
