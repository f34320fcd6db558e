// Package catalog exposes the master list over HTTP: a manual sync trigger and
// read-only lookups against the currently loaded snapshot.
package catalog
