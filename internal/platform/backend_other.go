//go:build !linux

package platform

// Connect reports ErrUnsupported outside Linux.
func Connect() (Backend, error) {
	return nil, ErrUnsupported
}
