package montecarlo

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2s"
	"golang.org/x/sync/errgroup"

	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/failure"
	"github.com/networmix/netgraph/view"
)

// AnalysisFunc is one Monte Carlo sample: given a failure-masked View, it
// computes and returns whatever result shape the caller's analysis needs
// (a capacity envelope, an MSD search result, a raw connectivity check,
// ...). It must be safe to call concurrently from multiple goroutines
// against views sharing the same underlying graph.
type AnalysisFunc func(v *view.View) (any, error)

// Config controls one Run invocation.
type Config struct {
	// Iterations is the number of Monte Carlo samples requested.
	Iterations int
	// Parallelism caps how many unique exclusion patterns run
	// concurrently. Values <= 1 run serially.
	Parallelism int
	// Baseline, if true, makes iteration 0 run with no exclusions at all
	// (the as-built network), with every subsequent iteration sampled
	// from the failure policy.
	Baseline bool
	// Seed, if non-nil, is combined with the iteration index (Seed+i) and
	// passed to Policy.Apply as a per-iteration seed override, making the
	// whole run reproducible.
	Seed *int64
	// StoreFailurePatterns, if true, populates Result.FailurePatterns
	// with the exclusion set used by every iteration (not just the
	// deduplicated unique set).
	StoreFailurePatterns bool
}

// FailurePattern records the exclusion set behind one iteration, when
// Config.StoreFailurePatterns is set.
type FailurePattern struct {
	IterationIndex int
	IsBaseline     bool
	ExcludedNodes  []string
	ExcludedLinks  []uint64
	FailureID      string
}

// Metadata summarizes one Run invocation.
type Metadata struct {
	Iterations     int
	Parallelism    int
	Baseline       bool
	ExecutionTime  time.Duration
	UniquePatterns int
}

// Result is the outcome of Run.
type Result struct {
	// Results holds one entry per requested iteration, in iteration
	// order — Results[i] is the value AnalysisFunc returned for the
	// exclusion pattern sampled at iteration i.
	Results []any
	// FailureIDs holds the same-length, same-order failure pattern ID for
	// each entry in Results ("" for an empty pattern, "baseline" for the
	// baseline iteration, else the hex-encoded 8-byte BLAKE2Xs output over
	// the sorted exclusion sets).
	FailureIDs      []string
	FailurePatterns []FailurePattern
	Metadata        Metadata
}

// Run samples iterations exclusion patterns from policy (nil means "no
// failures ever"), deduplicates identical patterns, evaluates fn once per
// unique pattern — in parallel up to cfg.Parallelism when there is more
// than one unique pattern worth parallelizing — and replicates each
// unique result back to every iteration that produced the same pattern.
func Run(g *core.Graph, policy *failure.Policy, riskGroups map[string]failure.RiskGroup, cfg Config, fn AnalysisFunc) (Result, error) {
	hasRules := policy != nil && len(policy.Rules) > 0

	if !hasRules && cfg.Iterations > 1 && !cfg.Baseline {
		return Result{}, ErrIterationsWithoutPolicy
	}
	if cfg.Baseline && cfg.Iterations < 2 {
		return Result{}, ErrBaselineNeedsTwoIterations
	}

	mcIters := cfg.Iterations
	if !hasRules {
		mcIters = 1
	}

	type pattern struct {
		nodes []string
		links []uint64
	}

	iterPattern := make([]pattern, mcIters)
	iterIsBaseline := make([]bool, mcIters)
	iterKey := make([]string, mcIters)

	keyOrder := make([]string, 0)
	keyFirstIdx := make(map[string]int)

	for i := 0; i < mcIters; i++ {
		isBaseline := cfg.Baseline && i == 0
		iterIsBaseline[i] = isBaseline

		var p pattern
		if !isBaseline && hasRules {
			var seedOffset *int64
			if cfg.Seed != nil {
				s := *cfg.Seed + int64(i)
				seedOffset = &s
			}
			nodes, links, _, err := policy.Apply(g, riskGroups, seedOffset)
			if err != nil {
				return Result{}, err
			}
			p = pattern{nodes: nodes, links: links}
		}
		iterPattern[i] = p

		key := dedupKey(p.nodes, p.links)
		iterKey[i] = key
		if _, ok := keyFirstIdx[key]; !ok {
			keyFirstIdx[key] = i
			keyOrder = append(keyOrder, key)
		}
	}

	start := time.Now()

	computeOne := func(key string) (any, error) {
		p := iterPattern[keyFirstIdx[key]]
		v := view.New(g, p.nodes, p.links)
		return fn(v)
	}

	uniqueResults := make([]any, len(keyOrder))
	uniqueErrs := make([]error, len(keyOrder))

	useParallel := cfg.Parallelism > 1 && len(keyOrder) > 1
	if useParallel {
		grp := new(errgroup.Group)
		grp.SetLimit(cfg.Parallelism)
		for idx, key := range keyOrder {
			idx, key := idx, key
			grp.Go(func() error {
				uniqueResults[idx], uniqueErrs[idx] = computeOne(key)
				return nil
			})
		}
		_ = grp.Wait()
	} else {
		for idx, key := range keyOrder {
			uniqueResults[idx], uniqueErrs[idx] = computeOne(key)
		}
	}

	keyResult := make(map[string]any, len(keyOrder))
	for idx, key := range keyOrder {
		if uniqueErrs[idx] != nil {
			return Result{}, uniqueErrs[idx]
		}
		keyResult[key] = uniqueResults[idx]
	}

	results := make([]any, mcIters)
	failureIDs := make([]string, mcIters)
	keyFailureID := make(map[string]string, len(keyOrder))
	for _, key := range keyOrder {
		p := iterPattern[keyFirstIdx[key]]
		keyFailureID[key] = failureID(p.nodes, p.links)
	}

	for i := 0; i < mcIters; i++ {
		key := iterKey[i]
		results[i] = keyResult[key]
		if iterIsBaseline[i] {
			failureIDs[i] = "baseline"
		} else {
			failureIDs[i] = keyFailureID[key]
		}
	}

	var patterns []FailurePattern
	if cfg.StoreFailurePatterns {
		patterns = make([]FailurePattern, mcIters)
		for i := 0; i < mcIters; i++ {
			patterns[i] = FailurePattern{
				IterationIndex: i,
				IsBaseline:     iterIsBaseline[i],
				ExcludedNodes:  iterPattern[i].nodes,
				ExcludedLinks:  iterPattern[i].links,
				FailureID:      failureIDs[i],
			}
		}
	}

	return Result{
		Results:         results,
		FailureIDs:      failureIDs,
		FailurePatterns: patterns,
		Metadata: Metadata{
			Iterations:     mcIters,
			Parallelism:    cfg.Parallelism,
			Baseline:       cfg.Baseline,
			ExecutionTime:  time.Since(start),
			UniquePatterns: len(keyOrder),
		},
	}, nil
}

// dedupKey builds a deduplication cache key from a sorted exclusion
// pattern. Iteration index and analysis kwargs are intentionally absent:
// within one Run call fn and its parameters are fixed, so the exclusion
// pattern alone determines whether two iterations are equivalent work.
func dedupKey(nodes []string, links []uint64) string {
	n := make([]string, len(nodes))
	copy(n, nodes)
	sort.Strings(n)
	l := make([]uint64, len(links))
	copy(l, links)
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })

	var b strings.Builder
	b.WriteString(strings.Join(n, ","))
	b.WriteByte('|')
	for i, id := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(id, 10))
	}
	return b.String()
}

// failureID is the hex encoding of an 8-byte BLAKE2Xs (blake2s XOF) output
// over the sorted exclusion pattern as formatted by dedupKey, or "" for an
// empty (no-failure) pattern. The XOF output differs from a plain BLAKE2s
// digest computed with an 8-byte digest size.
func failureID(nodes []string, links []uint64) string {
	if len(nodes) == 0 && len(links) == 0 {
		return ""
	}
	payload := dedupKey(nodes, links)
	h, _ := blake2s.NewXOF(8, nil)
	h.Write([]byte(payload))
	out := make([]byte, 8)
	h.Read(out)
	return hex.EncodeToString(out)
}
