package schedule

import (
	"github.com/networmix/netgraph/policy"
	"github.com/networmix/netgraph/view"
)

// Demand is one concrete (src, dst, volume) demand with its own FlowPolicy,
// the unit the scheduler places — the Go shape of the Python original's
// Demand object as seen by place_demands_round_robin (this package does
// not model TrafficDemand expansion or the Network layer that produces
// Demand instances; it only schedules already-expanded demands).
type Demand struct {
	Priority int
	Src, Dst string
	Volume   float64
	Placed   float64
	Policy   *policy.FlowPolicy
	// FlowClass distinguishes this demand's flows from any other demand
	// routed between the same (Src, Dst) and is passed as the flow class on
	// every regular placement; callers may pre-seed it (e.g. a stable
	// per-demand identifier). The scheduler never writes it: reoptimization
	// re-places each demand under its own internal per-demand key instead.
	FlowClass any
}

// place requests the full outstanding (Volume - Placed) leftover for this
// demand in one shot.
func (d *Demand) place(v *view.View) (placed, remaining float64, err error) {
	if d.Policy == nil {
		return 0, d.Volume - d.Placed, nil
	}
	leftover := d.Volume - d.Placed
	placed, remaining, err = d.Policy.PlaceDemand(v, d.Src, d.Dst, d.FlowClass, leftover, nil, nil)
	if err != nil {
		return 0, leftover, err
	}
	d.Placed += placed
	return placed, remaining, nil
}
