// Package metrics implements the statistics behind result comparison:
// the metric catalog, per-step aggregation and Sturges-rule histograms.
//
// Everything here is pure, in-memory computation. Nothing in this package
// performs I/O or logs, and no type is safe for concurrent mutation.
//
// # Comparing steps
//
//	agg := metrics.NewAggregator([]string{"full_load_time", "total_size"})
//	if err := agg.RegisterStep("before", 0, beforeDocs); err != nil {
//	    return err
//	}
//	if err := agg.RegisterStep("after", 1, afterDocs); err != nil {
//	    return err
//	}
//
//	for step := 0; step < agg.Steps(); step++ {
//	    v, _ := agg.Aggregate(agg.Samples("full_load_time", step), metrics.Percentile95, "full_load_time")
//	    fmt.Println(agg.Label(step), v) // prints "n/a" when the value could not be computed
//	}
//
// # Histograms
//
//	h, err := metrics.NewHistogram(samples)
//	if err != nil {
//	    return err // empty or non-numeric samples
//	}
//	ranges := h.Ranges(true)     // "0.8 - 1.2", ...
//	frequencies := h.Frequencies() // percentages, one per range
package metrics
