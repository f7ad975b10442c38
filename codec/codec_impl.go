package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cqkv/statdump/model"
)

type CodecImpl struct{}

func NewCodecImpl() *CodecImpl {
	return &CodecImpl{}
}

var byteOrder = binary.LittleEndian

/*
default codec, little-endian, no padding:
	- header: magic(4) + version(4) + count(4)
	- record: id(8) + count(4) + cost(4) + primary(1) + mode(1)
	magic | version | count | id | count | cost | primary | mode | id | ...
*/

func (cl *CodecImpl) MarshalHeader(header *model.DumpHeader) ([]byte, error) {
	data := make([]byte, model.HeaderSize)
	byteOrder.PutUint32(data[0:4], header.Magic)
	byteOrder.PutUint32(data[4:8], header.Version)
	byteOrder.PutUint32(data[8:12], header.Count)
	return data, nil
}

func (cl *CodecImpl) UnmarshalHeader(data []byte, header *model.DumpHeader) error {
	if len(data) < model.HeaderSize {
		return model.Wrap(model.ErrIO, io.ErrUnexpectedEOF)
	}
	header.Magic = byteOrder.Uint32(data[0:4])
	header.Version = byteOrder.Uint32(data[4:8])
	header.Count = byteOrder.Uint32(data[8:12])
	return nil
}

func (cl *CodecImpl) MarshalRecord(record *model.Record) ([]byte, error) {
	data := make([]byte, model.RecordSize)
	byteOrder.PutUint64(data[0:8], uint64(record.ID))
	byteOrder.PutUint32(data[8:12], uint32(record.Count))
	byteOrder.PutUint32(data[12:16], math.Float32bits(record.Cost))
	if record.Primary {
		data[16] = 1
	}
	data[17] = record.Mode & model.ModeMask
	return data, nil
}

func (cl *CodecImpl) UnmarshalRecord(data []byte, record *model.Record) error {
	if len(data) < model.RecordSize {
		return model.Wrap(model.ErrIO, io.ErrUnexpectedEOF)
	}
	record.ID = int64(byteOrder.Uint64(data[0:8]))
	record.Count = int32(byteOrder.Uint32(data[8:12]))
	record.Cost = math.Float32frombits(byteOrder.Uint32(data[12:16]))
	record.Primary = data[16] != 0
	record.Mode = data[17] & model.ModeMask
	return nil
}

// CheckHeader rejects anything but the single supported magic and version.
func CheckHeader(header *model.DumpHeader) error {
	if header.Magic != model.DumpMagic {
		return model.Wrap(model.ErrFormat, fmt.Errorf("bad magic 0x%08x", header.Magic))
	}
	if header.Version != model.DumpVersion {
		return model.Wrap(model.ErrFormat, fmt.Errorf("unsupported version %d", header.Version))
	}
	return nil
}
