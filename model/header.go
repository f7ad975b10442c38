package model

const (
	// DumpMagic identifies dump files ("SDMP" when read as little-endian bytes).
	DumpMagic uint32 = 0x504D4453
	// DumpVersion is the only format version decode accepts.
	DumpVersion uint32 = 1

	// HeaderSize is magic(4) + version(4) + record count(4).
	HeaderSize = 12
	// RecordSize is id(8) + count(4) + cost(4) + primary(1) + mode(1).
	RecordSize = 18
)

// DumpHeader precedes the records of a dump.
type DumpHeader struct {
	Magic   uint32
	Version uint32
	Count   uint32
}

// NewDumpHeader returns the header for a dump of n records.
func NewDumpHeader(n uint32) *DumpHeader {
	return &DumpHeader{
		Magic:   DumpMagic,
		Version: DumpVersion,
		Count:   n,
	}
}
