package reconcile

import "sort"

// Aggregate folds ledgers into barcode-keyed observations. The result does not
// depend on the order of ledgers. When racks recorded different names for one
// barcode, the name from the lexicographically first rack wins.
func Aggregate(ledgers []RackLedger) Observations {
	out := make(Observations)
	for _, rl := range ledgers {
		for code, rec := range rl.Ledger {
			if rec.Quantity <= 0 {
				continue
			}
			obs, ok := out[code]
			if !ok {
				obs = &Observation{
					Barcode:  code,
					Name:     rec.Name,
					racks:    make(map[string]struct{}),
					nameRack: rl.RackID,
				}
				out[code] = obs
			}
			obs.TotalQuantity += rec.Quantity
			obs.racks[rl.RackID] = struct{}{}
			if rl.RackID < obs.nameRack {
				obs.Name = rec.Name
				obs.nameRack = rl.RackID
			}
		}
	}
	return out
}

// Barcodes returns the observed barcodes, sorted.
func (o Observations) Barcodes() []string {
	out := make([]string, 0, len(o))
	for code := range o {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
