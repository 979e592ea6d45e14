// Package rebalance caps over-represented classes of a dataset table.
//
// # Policies
//
// Every class is capped at ceil(smallest class count * ratio). What gets
// counted and dropped depends on whether a grouping column is configured:
//
//   - grouped: classes are measured in distinct grouping keys (for example
//     conversation tree IDs) and sampling keeps or drops whole groups, so a
//     kept conversation is never truncated mid-thread.
//   - row: classes are measured in raw rows and rows are dropped
//     individually.
//
// Sampling is uniform without replacement. A fixed seed reproduces the
// same selection; the zero seed draws from the clock.
package rebalance
