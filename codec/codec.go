package codec

import "github.com/cqkv/statdump/model"

type Codec interface {
	// MarshalHeader return the fixed-size dump header data
	MarshalHeader(*model.DumpHeader) ([]byte, error)

	UnmarshalHeader([]byte, *model.DumpHeader) error

	// MarshalRecord return the fixed-size record data, mode masked to 3 bits
	MarshalRecord(*model.Record) ([]byte, error)

	UnmarshalRecord([]byte, *model.Record) error
}
