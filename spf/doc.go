// Options (spf.Options via functional Option):
//
//	– Source:   root node ID for the search (required, non-empty).
//	– Selector: edge-selection Selector applied at every hop (spec §4.2).
//	– MaxCost:  optional cumulative-cost ceiling; unreached beyond it.
//
// Errors (sentinel):
//
//	– ErrEmptySource    if Source is empty.
//	– ErrNilGraph       if the View is nil.
//	– ErrSourceNotFound if Source is excluded or absent from the graph.
//
// Example usage:
//
//	sel := spf.NewSelector(base.AllMinCost, 0, nil)
//	cost, pred, err := spf.Run(v, spf.WithSelector(sel), func(o *spf.Options) { o.Source = "S" })
package spf
