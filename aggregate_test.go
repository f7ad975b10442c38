package statdump

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/cqkv/statdump/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sortFoldAggregate is the plain concatenate, stable sort by id, fold adjacent runs algorithm.
func sortFoldAggregate(a, b []model.Record) []model.Record {
	all := make([]model.Record, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	out := make([]model.Record, 0)
	for i := 0; i < len(all); {
		acc := all[i].Normalize()
		j := i + 1
		for j < len(all) && all[j].ID == acc.ID {
			acc = model.Fold(acc, all[j])
			j++
		}
		out = append(out, acc)
		i = j
	}
	return out
}

func randomRecords(rnd *rand.Rand, n int, idRange int64) []model.Record {
	records := make([]model.Record, n)
	for i := range records {
		records[i] = model.Record{
			ID:      rnd.Int63n(idRange),
			Count:   int32(rnd.Intn(5)),
			Cost:    rnd.Float32() * 1000,
			Primary: rnd.Intn(2) == 1,
			Mode:    uint8(rnd.Intn(256)),
		}
	}
	return records
}

func TestAggregate(t *testing.T) {
	a := []model.Record{
		{ID: 10, Count: 1, Cost: 1.0, Primary: true, Mode: 1},
		{ID: 10, Count: 2, Cost: 2.0, Primary: true, Mode: 3},
		{ID: 20, Count: 1, Cost: 1.5, Primary: false, Mode: 2},
	}
	b := []model.Record{
		{ID: 20, Count: 2, Cost: 2.5, Primary: true, Mode: 7},
		{ID: 10, Count: 4, Cost: 4.0, Primary: true, Mode: 2},
	}

	merged, err := Aggregate(a, b)
	require.Nil(t, err)
	assert.Equal(t, []model.Record{
		{ID: 10, Count: 7, Cost: 7.0, Primary: true, Mode: 3},
		{ID: 20, Count: 3, Cost: 4.0, Primary: false, Mode: 7},
	}, merged)
}

func TestAggregate_DuplicatesWithinAndAcross(t *testing.T) {
	a := []model.Record{
		{ID: 10, Count: 1, Cost: 1.0, Primary: true, Mode: 1},
		{ID: 10, Count: 2, Cost: 2.0, Primary: true, Mode: 3},
		{ID: 20, Count: 1, Cost: 1.5, Primary: false, Mode: 2},
		{ID: 10, Count: 3, Cost: 3.0, Primary: false, Mode: 0},
		{ID: 30, Count: 5, Cost: 0.5, Primary: true, Mode: 7},
	}
	b := []model.Record{
		{ID: 20, Count: 2, Cost: 2.5, Primary: true, Mode: 7},
		{ID: 40, Count: 1, Cost: 4.0, Primary: true, Mode: 1},
		{ID: 10, Count: 4, Cost: 4.0, Primary: true, Mode: 2},
	}

	merged, err := Aggregate(a, b)
	require.Nil(t, err)
	assert.Equal(t, []model.Record{
		{ID: 10, Count: 10, Cost: 10.0, Primary: false, Mode: 3},
		{ID: 20, Count: 3, Cost: 4.0, Primary: false, Mode: 7},
		{ID: 30, Count: 5, Cost: 0.5, Primary: true, Mode: 7},
		{ID: 40, Count: 1, Cost: 4.0, Primary: true, Mode: 1},
	}, merged)
}

func TestAggregate_Disjoint(t *testing.T) {
	a := []model.Record{
		{ID: 3, Count: 1, Cost: 9.0, Primary: true, Mode: 1},
		{ID: 1, Count: 1, Cost: 2.0, Primary: true, Mode: 0},
	}
	b := []model.Record{
		{ID: 2, Count: 1, Cost: 5.0, Primary: false, Mode: 7},
		{ID: -4, Count: 1, Cost: 1.0, Primary: true, Mode: 2},
	}

	merged, err := Aggregate(a, b)
	require.Nil(t, err)
	assert.Equal(t, []model.Record{b[1], a[1], b[0], a[0]}, merged)
}

func TestAggregate_Empty(t *testing.T) {
	merged, err := Aggregate(nil, nil)
	assert.Nil(t, err)
	assert.NotNil(t, merged)
	assert.Equal(t, 0, len(merged))

	one := []model.Record{{ID: 1, Count: 1, Mode: 12}}
	merged, err = Aggregate(nil, one)
	assert.Nil(t, err)
	assert.Equal(t, []model.Record{{ID: 1, Count: 1, Mode: 4}}, merged)
}

func TestAggregate_InputsUntouched(t *testing.T) {
	a := []model.Record{{ID: 1, Count: 1, Cost: 1, Primary: true, Mode: 9}, {ID: 1, Count: 2}}
	b := []model.Record{{ID: 1, Count: 3, Primary: true}}
	aCopy := append([]model.Record(nil), a...)
	bCopy := append([]model.Record(nil), b...)

	merged, err := Aggregate(a, b)
	require.Nil(t, err)
	assert.Equal(t, aCopy, a)
	assert.Equal(t, bCopy, b)

	merged[0].Count = 100
	assert.Equal(t, aCopy, a)
	assert.Equal(t, bCopy, b)
}

func TestAggregate_CountWraps(t *testing.T) {
	a := []model.Record{{ID: 1, Count: math.MaxInt32}}
	b := []model.Record{{ID: 1, Count: 2}}

	merged, err := Aggregate(a, b)
	require.Nil(t, err)
	assert.Equal(t, int32(math.MinInt32+1), merged[0].Count)
}

func TestAggregate_CostFoldOrder(t *testing.T) {
	// float32 spacing at 1e8 is 8: (1e8+3)+3 stays 1e8 while 1e8+(3+3) rounds up to 1e8+8
	a := []model.Record{{ID: 1, Cost: 1e8}, {ID: 1, Cost: 3}}
	b := []model.Record{{ID: 1, Cost: 3}}

	merged, err := Aggregate(a, b)
	require.Nil(t, err)
	expected := float32(1e8)
	expected += 3
	expected += 3
	assert.Equal(t, expected, merged[0].Cost)
	assert.Equal(t, float32(1e8), merged[0].Cost)
}

func TestAggregate_MatchesSortFold(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, degree := range []int{2, 32} {
		a := randomRecords(rnd, 5000, 2000)
		b := randomRecords(rnd, 5000, 2000)

		merged, err := Aggregate(a, b, WithBTreeDegree(degree))
		require.Nil(t, err)
		assert.Equal(t, sortFoldAggregate(a, b), merged)
	}
}

func TestAggregate_UniqueIDs(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	a := randomRecords(rnd, 50000, 20000)
	b := randomRecords(rnd, 50000, 20000)

	merged, err := Aggregate(a, b)
	require.Nil(t, err)

	seen := make(map[int64]struct{}, len(merged))
	for i, r := range merged {
		_, dup := seen[r.ID]
		assert.False(t, dup, "id %d repeated", r.ID)
		seen[r.ID] = struct{}{}
		if i > 0 {
			assert.Less(t, merged[i-1].ID, r.ID)
		}
		assert.LessOrEqual(t, r.Mode, model.ModeMask)
	}
}

func TestAggregate_Limit(t *testing.T) {
	a := make([]model.Record, 2)
	b := make([]model.Record, 2)

	merged, err := Aggregate(a, b, WithMaxRecords(3))
	assert.Nil(t, merged)
	assert.True(t, errors.Is(err, ErrOutOfMemory))

	_, err = Aggregate(a, b, WithMaxRecords(4))
	assert.Nil(t, err)
}
