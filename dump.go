package statdump

import (
	"fmt"
	"os"

	"github.com/cqkv/statdump/codec"
	"github.com/cqkv/statdump/fio"
	"github.com/cqkv/statdump/model"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LoadDump reads the dump at path. Paths ending in .zst, .lz4 or .sz are decompressed first.
// On failure no records are returned.
func LoadDump(path string, opts ...Option) ([]model.Record, error) {
	o := newOptions(opts)
	return o.loadDump(path)
}

// StoreDump writes records to path. The dump is written to a temporary sibling and renamed
// over path only once it is complete and synced, so a failed store never leaves a dump behind.
// Concurrent stores to the same path fail with ErrDumpLocked.
func StoreDump(path string, records []model.Record, opts ...Option) error {
	o := newOptions(opts)
	return o.storeDump(path, records)
}

func (o *options) loadDump(path string) ([]model.Record, error) {
	if path == "" {
		return nil, model.Wrap(ErrInvalidArgument, errors.New("empty source path"))
	}

	ioManager, err := o.ioManagerCreator(path, fio.ReadFlag)
	if err != nil {
		return nil, model.Wrap(ErrIO, err)
	}
	defer ioManager.Close()

	compression := fio.CompressionFromPath(path)
	r, err := fio.NewReader(ioManager, compression)
	if err != nil {
		return nil, model.Wrap(ErrIO, err)
	}
	defer r.Close()

	records, err := codec.NewDecoder(r, o.codec, o.maxRecords).Decode()
	if err != nil {
		return nil, err
	}

	o.logger.WithFields(logrus.Fields{
		"path":        path,
		"records":     len(records),
		"compression": compression.String(),
	}).Debug("dump loaded")
	return records, nil
}

func (o *options) storeDump(path string, records []model.Record) error {
	if path == "" {
		return model.Wrap(ErrInvalidArgument, errors.New("empty destination path"))
	}

	lock := fio.NewFlock(path)
	locked, err := lock.TryLock()
	if err != nil {
		return model.Wrap(ErrIO, err)
	}
	if !locked {
		return model.Wrap(ErrIO, ErrDumpLocked)
	}
	defer func() {
		// remove while still holding the lock so a waiting writer cannot keep the old inode
		_ = os.Remove(lock.Path())
		_ = lock.Unlock()
	}()

	tmp := fmt.Sprintf("%s.%d.tmp", path, os.Getpid())
	size, err := o.writeDump(tmp, fio.CompressionFromPath(path), records)
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return model.Wrap(ErrIO, errors.Wrapf(err, "rename %s", tmp))
	}

	o.logger.WithFields(logrus.Fields{
		"path":    path,
		"records": len(records),
		"size":    humanize.Bytes(uint64(size)),
	}).Debug("dump stored")
	return nil
}

// writeDump returns the size of the written file.
func (o *options) writeDump(file string, compression fio.Compression, records []model.Record) (int64, error) {
	ioManager, err := o.ioManagerCreator(file, fio.WriteFlag)
	if err != nil {
		return 0, model.Wrap(ErrIO, err)
	}

	w, err := fio.NewWriter(ioManager, compression)
	if err != nil {
		_ = ioManager.Close()
		return 0, model.Wrap(ErrIO, err)
	}

	if err = codec.NewEncoder(w, o.codec).Encode(records); err != nil {
		_ = w.Close()
		_ = ioManager.Close()
		return 0, err
	}
	if err = w.Close(); err != nil {
		_ = ioManager.Close()
		return 0, model.Wrap(ErrIO, err)
	}
	if err = ioManager.Sync(); err != nil {
		_ = ioManager.Close()
		return 0, model.Wrap(ErrIO, err)
	}

	size, err := ioManager.Size()
	if err != nil {
		_ = ioManager.Close()
		return 0, model.Wrap(ErrIO, err)
	}
	if err = ioManager.Close(); err != nil {
		return 0, model.Wrap(ErrIO, err)
	}
	return size, nil
}
