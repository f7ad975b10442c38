package statdump

import (
	"fmt"

	"github.com/cqkv/statdump/keydir"
	"github.com/cqkv/statdump/model"
)

// Aggregate merges a and b into one record per distinct id, in ascending id order.
//
// Records are grouped in the order of a followed by b. The first record of an id seeds its
// group and the others are folded in with model.Fold, left to right. This is the order a
// stable sort of a++b by id would produce, so float sums are reproducible. Count wraps on
// int32 overflow. Inputs are not modified and the result shares no memory with them.
func Aggregate(a, b []model.Record, opts ...Option) ([]model.Record, error) {
	o := newOptions(opts)
	return o.aggregate(a, b)
}

func (o *options) aggregate(a, b []model.Record) ([]model.Record, error) {
	if total := len(a) + len(b); total > o.maxRecords {
		return nil, model.Wrap(ErrOutOfMemory, fmt.Errorf("%d records to aggregate, limit is %d", total, o.maxRecords))
	}

	kd := keydir.NewBTree(o.btreeDegree, model.Fold)
	defer kd.Close()

	for _, records := range [][]model.Record{a, b} {
		for i := range records {
			kd.Fold(records[i])
		}
	}

	return kd.Records(), nil
}
