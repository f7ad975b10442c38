package statdump

import (
	"cmp"
	"slices"

	"github.com/cqkv/statdump/model"
)

// SortByCost orders records by ascending cost, in place. The sort is stable: records with
// equal cost keep their relative order. NaN costs sort before every number, in no particular
// order among themselves.
func SortByCost(records []model.Record) {
	slices.SortStableFunc(records, func(x, y model.Record) int {
		return cmp.Compare(x.Cost, y.Cost)
	})
}
