package catalog

import (
	"errors"
	"strings"
	"time"

	"stock-matcher/core/utils"
)

var (
	// ErrEmptyDataset is returned when the source produced no rows at all.
	ErrEmptyDataset = errors.New("the fetched master list is empty after parsing")
	// ErrNoBarcodeColumn is returned when no row carried a barcode.
	ErrNoBarcodeColumn = errors.New(`no items with a "Barcode" column were found, check the sheet headers`)
)

// Row is one raw record keyed by the source's column headers.
type Row map[string]string

// canonical column names after folding case, spaces and underscores.
const (
	fieldBarcode     = "barcode"
	fieldRack        = "rack"
	fieldName        = "name"
	fieldSize        = "size"
	fieldExpectedQty = "expectedqty"
)

// Normalize converts raw rows into a Catalog. Rows without a barcode are dropped.
func Normalize(rows []Row, now time.Time) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	items := make([]MasterItem, 0, len(rows))
	for _, row := range rows {
		fields := foldRow(row)
		code := fields[fieldBarcode]
		if code == "" {
			continue
		}
		items = append(items, MasterItem{
			Barcode:     code,
			Name:        orPlaceholder(fields[fieldName]),
			Size:        orPlaceholder(fields[fieldSize]),
			RackLabel:   orPlaceholder(fields[fieldRack]),
			ExpectedQty: utils.ParseQuantity(fields[fieldExpectedQty]),
		})
	}

	if len(items) == 0 {
		return nil, ErrNoBarcodeColumn
	}
	return New(items, now), nil
}

// foldRow re-keys a row by folded header. When several spellings of one column
// carry a value, the sheet's canonical header wins over alternates.
func foldRow(row Row) map[string]string {
	out := make(map[string]string, len(row))
	canonical := make(map[string]bool, len(row))
	for key, value := range row {
		v := strings.TrimSpace(value)
		if v == "" {
			continue
		}
		k := foldKey(key)
		isCanonical := key == canonicalHeader(k)
		if _, seen := out[k]; seen && (canonical[k] || !isCanonical) {
			continue
		}
		out[k] = v
		canonical[k] = isCanonical
	}
	return out
}

func foldKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
}

// canonicalHeader is the spelling the published sheet uses; it takes precedence
// over alternates.
func canonicalHeader(folded string) string {
	switch folded {
	case fieldBarcode:
		return "Barcode"
	case fieldRack:
		return "Rack"
	case fieldName:
		return "Name"
	case fieldSize:
		return "Size"
	case fieldExpectedQty:
		return "ExpectedQty"
	}
	return ""
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
