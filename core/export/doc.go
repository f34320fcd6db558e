// Package export renders reconciliation results into files.
//
// Two formats are produced:
//
//   - A discrepancy CSV of one report's mismatched, missing, and extra lines,
//     in that order.
//   - A full workbook with the sheets "Master Stock", "Scanned Data" and
//     "Comparison Report", written with excelize.
//
// Rendered files can be published to the object storage bucket, where each upload
// gets its own uuid-prefixed object name.
package export
