// Package schedule places many prioritized demands onto a shared graph,
// round-robin within each priority class, with max-min fairness across
// rounds and a class-wide reoptimization fallback when a round makes no
// progress (spec §4.6).
//
// Grounded on the Python original's
// ngraph/demand/manager/schedule.py:place_demands_round_robin and its
// helper _reoptimize_priority_demands, reproduced closely: same
// round-0-original-order / round-N-least-served-ratio-first ordering, the
// same "reoptimize once per class on a dead round, then give up" rule. The
// "auto rounds" heuristic (cap at 3 passes with early-stop on served-ratio
// convergence) described in spec §4.6 belongs to the caller that decides
// placementRounds before invoking this package, not to the scheduler
// itself, which only ever runs the exact round count it is given — this
// mirrors the Python split between TrafficManager (computes the "auto"
// round count) and schedule.py (runs a fixed number of rounds).
//
// There is no teacher (katalvlaran/lvlath) counterpart to a priority-aware
// demand scheduler; the package shape (plain functions over an explicit
// Demand slice, no hidden package-level state) follows this tree's own
// policy package, built in the teacher's idiom.
//
// Logging: DEBUG-level round/priority progress uses stdlib log/slog, per
// this module's ambient-stack choice.
package schedule
