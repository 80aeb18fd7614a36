//go:build !windows

package input

// NewInjector returns a no-op injector on platforms without native input
// injection, along with ErrUnsupported so the caller can log it once.
func NewInjector() (Injector, error) {
	return nopInjector{}, ErrUnsupported
}
