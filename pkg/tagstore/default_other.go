//go:build !linux

package tagstore

// 🏭 NewDefault returns the store for platforms without a native tag
// facility. Tags live only for the life of the process.
func NewDefault() Store {
	return NewMemory()
}
