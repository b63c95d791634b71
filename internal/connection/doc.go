// Package connection holds the state behind the "open connection" dialog.
//
// A Panel owns three pieces of state: the selected tab index into the
// reordered connector list, the field-value map, and the field-error map.
// All updates are plain method calls made from the UI goroutine; there is no
// locking, no background work and no implicit observers. Prop changes coming
// from outside (a new active source, a refreshed catalog) are applied with an
// explicit SyncActive or SetSources call so ordering stays deterministic.
//
// # Ordering
//
// Enabled connectors are listed before disabled ones, preserving relative
// order inside each group, so the default selection lands on a usable
// connector whenever one exists.
//
// # Open
//
// Open is allowed only when a connector is selected, it is not disabled, and
// no field currently reports an error. Errors are keyed by field ID and
// survive a tab change; only a valid value for that field removes one.
// Opening hands the connector ID and a
// copy of the field values to a Selector and returns immediately.
package connection
