package model

// ModeMask keeps the three significant bits of Record.Mode.
const ModeMask uint8 = 0x7

// Record is one statistics entry of a dump.
type Record struct {
	ID      int64
	Count   int32
	Cost    float32
	Primary bool
	Mode    uint8 // only the low 3 bits are significant
}

// Normalize returns a copy of r with Mode masked to its low 3 bits.
func (r Record) Normalize() Record {
	r.Mode &= ModeMask
	return r
}

// Fold combines two records sharing an ID. x is the accumulator, y the next group member:
// counts and costs are summed, primary is AND-ed and the larger mode wins.
// Count wraps on int32 overflow.
func Fold(x, y Record) Record {
	acc := x.Normalize()
	acc.Count += y.Count
	acc.Cost += y.Cost
	acc.Primary = acc.Primary && y.Primary
	if m := y.Mode & ModeMask; m > acc.Mode {
		acc.Mode = m
	}
	return acc
}
