// Package loader mounts the HTTP features.
//
// Each feature (racks, catalog, items, reports, integrity) ships a loader type
// implementing Feature. The start command registers them on a Manager, and
// LoadAll mounts the enabled ones in registration order. A feature reports
// itself disabled when a dependency it needs is not configured, e.g. integrity
// without a storage client.
package loader
