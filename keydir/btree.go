package keydir

import (
	"github.com/cqkv/statdump/model"
	"github.com/google/btree"
)

var _ Keydir = (*BTree)(nil)

const defaultDegree = 32

// BTree implement the keydir. It is not safe for concurrent use.
type BTree struct {
	tree *btree.BTreeG[*Item]
	fold FoldFunc
}

// Item is a group accumulator keyed by id
type Item struct {
	id     int64
	record model.Record
}

func itemLess(a, b *Item) bool {
	return a.id < b.id
}

func NewBTree(degree int, fold FoldFunc) *BTree {
	if degree <= 0 {
		degree = defaultDegree
	}
	if fold == nil {
		fold = model.Fold
	}
	return &BTree{
		tree: btree.NewG[*Item](degree, itemLess),
		fold: fold,
	}
}

func (bt *BTree) Fold(record model.Record) {
	record = record.Normalize()
	if item, ok := bt.tree.Get(&Item{id: record.ID}); ok {
		// the key is unchanged, so the accumulator can be updated in place
		item.record = bt.fold(item.record, record)
		return
	}
	bt.tree.ReplaceOrInsert(&Item{id: record.ID, record: record})
}

func (bt *BTree) Get(id int64) (model.Record, bool) {
	item, ok := bt.tree.Get(&Item{id: id})
	if !ok {
		return model.Record{}, false
	}
	return item.record, true
}

func (bt *BTree) Len() int {
	return bt.tree.Len()
}

func (bt *BTree) Records() []model.Record {
	records := make([]model.Record, 0, bt.tree.Len())
	bt.tree.Ascend(func(item *Item) bool {
		records = append(records, item.record)
		return true
	})
	return records
}

func (bt *BTree) Close() error {
	bt.tree.Clear(false)
	return nil
}
