// Package widgets contains dumb render primitives for the explorer views.
//
// Allowed here:
// - stateless drawing helpers (bars, year columns, tables, chips, boxes, popup overlay)
//
// Not allowed here:
// - key handling, explorer state transitions, or anything that reads the catalogue
package widgets
