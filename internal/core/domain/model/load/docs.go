// Package load models gas deliveries to an AGU. A load occupies one slot,
// the (AGU, date, time of day) triple, and an AGU can have at most one load
// per slot. A ScheduledLoad becomes a DeliveredLoad once a transport company
// unloads it.
package load
