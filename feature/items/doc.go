// Package items answers where a single barcode is: what the master list expects,
// which racks it was scanned into, and how the totals compare.
package items
