// Package explorer is the view-state core of the browser.
//
// Everything here is a pure transform over an immutable slice of records:
// Apply filters, SortRecords orders, Paginate slices and clamps, Aggregate
// counts. Recompute chains them for one user interaction.
//
// Not allowed here:
// - rendering, key handling, I/O
package explorer
