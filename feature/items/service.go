package items

import (
	"fmt"
	"strings"

	"stock-matcher/core/barcode"
	"stock-matcher/core/catalog"
	"stock-matcher/core/httperr"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/session"

	"go.uber.org/zap"
)

// RackCount is the quantity of an item scanned in one rack.
type RackCount struct {
	RackID   string `json:"rackId"`
	Quantity int    `json:"quantity"`
}

// DetailReport traces one barcode through the master list and every rack.
type DetailReport struct {
	Barcode      string           `json:"barcode"`
	Name         string           `json:"name"`
	InCatalog    bool             `json:"inCatalog"`
	ExpectedRack string           `json:"expectedRack,omitempty"`
	ExpectedQty  int              `json:"expectedQty"`
	ScannedQty   int              `json:"scannedQty"`
	Racks        []RackCount      `json:"racks"`
	Status       reconcile.Status `json:"status"`
	Notes        []string         `json:"notes,omitempty"`
}

// Service looks up single items.
type Service struct {
	session *session.Session
	logger  *zap.Logger
}

// NewService creates a new items service.
func NewService(sess *session.Session, logger *zap.Logger) *Service {
	return &Service{session: sess, logger: logger}
}

// Detail builds the store-wide picture of one barcode. Barcodes that are neither
// listed nor scanned are not found.
func (s *Service) Detail(code string) (*DetailReport, error) {
	code, err := barcode.Validate(code)
	if err != nil {
		return nil, err
	}
	cat := s.session.Catalog()
	if cat == nil {
		return nil, reconcile.ErrCatalogNotLoaded
	}

	report := &DetailReport{Barcode: code, Racks: []RackCount{}}
	for _, summary := range s.session.Racks().List() {
		l, ok := s.session.Racks().Ledger(summary.RackID)
		if !ok {
			continue
		}
		if rec, ok := l[code]; ok {
			report.Racks = append(report.Racks, RackCount{RackID: summary.RackID, Quantity: rec.Quantity})
			report.ScannedQty += rec.Quantity
			if report.Name == "" {
				report.Name = rec.Name
			}
		}
	}

	item, listed := cat.Get(code)
	if !listed {
		if len(report.Racks) == 0 {
			return nil, fmt.Errorf("barcode %s: %w", code, httperr.ErrNotFound)
		}
		report.Status = reconcile.StatusUnlisted
		report.Notes = append(report.Notes, "Not in the master list.")
		return report, nil
	}

	report.InCatalog = true
	report.Name = item.Name
	report.ExpectedRack = item.RackLabel
	report.ExpectedQty = item.ExpectedQty
	report.Status = classify(item, report.ScannedQty)
	report.Notes = misplaced(item, report.Racks)
	return report, nil
}

func classify(item catalog.MasterItem, scanned int) reconcile.Status {
	switch {
	case scanned == 0:
		return reconcile.StatusMissing
	case scanned > item.ExpectedQty:
		return reconcile.StatusExtra
	case scanned < item.ExpectedQty:
		return reconcile.StatusMismatched
	default:
		return reconcile.StatusMatched
	}
}

// misplaced notes every rack holding the item other than its labelled rack.
func misplaced(item catalog.MasterItem, racks []RackCount) []string {
	var notes []string
	for _, rc := range racks {
		if item.InRack(rc.RackID) {
			continue
		}
		notes = append(notes, fmt.Sprintf("Found %d in %s, expected in %s.", rc.Quantity, rc.RackID, strings.ToUpper(item.RackLabel)))
	}
	return notes
}
