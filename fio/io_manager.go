package fio

// IOManager can be custom in options
type IOManager interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
	Size() (int64, error)
	Sync() error
	Close() error
}

type FileLocker interface {
	TryLock() (bool, error)
	Unlock() error
}
