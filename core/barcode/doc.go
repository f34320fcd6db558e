// Package barcode validates item barcodes before they reach a rack ledger.
//
// An item barcode is the letter "T" (either case) followed by exactly five
// decimal digits, e.g. T12345. Surrounding whitespace is ignored.
//
// # Usage
//
//	code, err := barcode.Validate(input)
//	if err != nil {
//	    // err is ErrInvalidFormat; show err.Error() to the user.
//	}
package barcode
