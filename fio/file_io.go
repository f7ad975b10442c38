package fio

import "os"

const (
	ReadFlag  = os.O_RDONLY
	WriteFlag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
)

// FileIO is the default implement for IOManager
type FileIO struct {
	fd *os.File
}

func NewFileIO(file string, flag int) (*FileIO, error) {
	fd, err := os.OpenFile(file, flag, 0644)
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd}, nil
}

// NewIOManager is NewFileIO behind the IOManager interface.
func NewIOManager(file string, flag int) (IOManager, error) {
	return NewFileIO(file, flag)
}

func (fio *FileIO) Read(buf []byte) (int, error) {
	return fio.fd.Read(buf)
}
func (fio *FileIO) Write(data []byte) (int, error) {
	return fio.fd.Write(data)
}
func (fio *FileIO) Size() (int64, error) {
	stat, err := fio.fd.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
func (fio *FileIO) Sync() error {
	return fio.fd.Sync()
}
func (fio *FileIO) Close() error {
	return fio.fd.Close()
}
