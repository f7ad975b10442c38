package codec

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/cqkv/statdump/model"
)

// DefaultMaxRecords bounds the allocation a single decode may request.
const DefaultMaxRecords = 1 << 27

// Encoder writes a complete dump container.
type Encoder struct {
	w     io.Writer
	codec Codec
}

func NewEncoder(w io.Writer, codec Codec) *Encoder {
	if codec == nil {
		codec = NewCodecImpl()
	}
	return &Encoder{w: w, codec: codec}
}

// Encode writes the header and every record. A failed Encode leaves the destination
// contents undefined.
func (e *Encoder) Encode(records []model.Record) error {
	if e.w == nil {
		return model.Wrap(model.ErrInvalidArgument, fmt.Errorf("nil writer"))
	}
	if uint64(len(records)) > math.MaxUint32 {
		return model.Wrap(model.ErrInvalidArgument, fmt.Errorf("%d records exceed the header count", len(records)))
	}

	bw := bufio.NewWriter(e.w)

	header, err := e.codec.MarshalHeader(model.NewDumpHeader(uint32(len(records))))
	if err != nil {
		return err
	}
	if _, err = bw.Write(header); err != nil {
		return model.Wrap(model.ErrIO, err)
	}

	for i := range records {
		data, err := e.codec.MarshalRecord(&records[i])
		if err != nil {
			return err
		}
		if _, err = bw.Write(data); err != nil {
			return model.Wrap(model.ErrIO, err)
		}
	}

	if err = bw.Flush(); err != nil {
		return model.Wrap(model.ErrIO, err)
	}
	return nil
}

// Decoder reads a complete dump container.
type Decoder struct {
	r          io.Reader
	codec      Codec
	maxRecords int
}

func NewDecoder(r io.Reader, codec Codec, maxRecords int) *Decoder {
	if codec == nil {
		codec = NewCodecImpl()
	}
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Decoder{r: r, codec: codec, maxRecords: maxRecords}
}

// Decode returns exactly the declared number of records or an error, never a partial result.
// Bytes after the last declared record are not read.
func (d *Decoder) Decode() ([]model.Record, error) {
	if d.r == nil {
		return nil, model.Wrap(model.ErrInvalidArgument, fmt.Errorf("nil reader"))
	}

	br := bufio.NewReader(d.r)

	buf := make([]byte, model.HeaderSize)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, model.Wrap(model.ErrIO, fmt.Errorf("read header: %w", err))
	}

	var header model.DumpHeader
	if err := d.codec.UnmarshalHeader(buf, &header); err != nil {
		return nil, err
	}
	if err := CheckHeader(&header); err != nil {
		return nil, err
	}

	if uint64(header.Count) > uint64(d.maxRecords) {
		return nil, model.Wrap(model.ErrOutOfMemory,
			fmt.Errorf("%d records declared, limit is %d", header.Count, d.maxRecords))
	}

	records := make([]model.Record, header.Count)
	buf = make([]byte, model.RecordSize)
	for i := range records {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, model.Wrap(model.ErrIO, fmt.Errorf("read record %d of %d: %w", i, header.Count, err))
		}
		if err := d.codec.UnmarshalRecord(buf, &records[i]); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// Encode writes records to w with the default codec.
func Encode(w io.Writer, records []model.Record) error {
	return NewEncoder(w, nil).Encode(records)
}

// Decode reads a dump from r with the default codec and record limit.
func Decode(r io.Reader) ([]model.Record, error) {
	return NewDecoder(r, nil, 0).Decode()
}
