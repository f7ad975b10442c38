package statdump

import (
	"io"

	"github.com/cqkv/statdump/codec"
	"github.com/cqkv/statdump/fio"
	"github.com/sirupsen/logrus"
)

const defaultTop = 10

type options struct {
	codec            codec.Codec
	ioManagerCreator func(file string, flag int) (fio.IOManager, error)
	maxRecords       int
	btreeDegree      int

	logger       logrus.FieldLogger
	top          int
	reportWriter io.Writer
}

type Option func(*options)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func newOptions(opts []Option) *options {
	o := &options{
		codec:            codec.NewCodecImpl(),
		ioManagerCreator: fio.NewIOManager,
		maxRecords:       codec.DefaultMaxRecords,
		logger:           discardLogger,
		top:              defaultTop,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithCodec(codec codec.Codec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

// WithIOManagerCreator replaces how dump files are opened. The created files must live on
// the local filesystem, StoreDump renames them into place.
func WithIOManagerCreator(fn func(file string, flag int) (fio.IOManager, error)) Option {
	return func(o *options) {
		if fn != nil {
			o.ioManagerCreator = fn
		}
	}
}

// WithMaxRecords bounds how many records a decode or an aggregation may hold.
func WithMaxRecords(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRecords = n
		}
	}
}

func WithBTreeDegree(degree int) Option {
	return func(o *options) {
		o.btreeDegree = degree
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTop sets how many records the preview lists.
func WithTop(n int) Option {
	return func(o *options) {
		o.top = n
	}
}

// WithReportWriter enables the preview table. Without it Pipeline.Run prints nothing.
func WithReportWriter(w io.Writer) Option {
	return func(o *options) {
		o.reportWriter = w
	}
}
