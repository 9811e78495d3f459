// Package stats derives aggregate simulation metrics from the funnel log:
// per-campaign funnel counts, global performance rates, per-template
// success-rate ranking, the merged recent-activity feed, and the dashboard
// summary.
//
// Everything here is read-side computation over narrow source interfaces;
// the package holds no state and writes nothing.
package stats
