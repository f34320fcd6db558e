// Package reports serves discrepancy reports and their exports.
//
// In-app reports reconcile one rack, or every rack at once, against the master
// list. Exports render the discrepancies as CSV or the whole session as an XLSX
// workbook, which can also be published to the object store.
package reports
