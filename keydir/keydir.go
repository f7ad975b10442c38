package keydir

import (
	"github.com/cqkv/statdump/model"
)

// FoldFunc merges the next record of a group into the accumulator.
type FoldFunc func(acc, next model.Record) model.Record

// Keydir groups records by id, folding every record into the accumulator of its id.
// you can use some other ordered data structure once you implement this interface
type Keydir interface {
	// Fold seeds the group of record.ID or folds record into it
	Fold(record model.Record)
	Get(id int64) (model.Record, bool)
	Len() int
	// Records returns one record per id in ascending id order
	Records() []model.Record
}
