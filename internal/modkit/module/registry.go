package module

import "sync"

// process-wide port registry filled during bootstrap so modules can look
// each other up by name instead of importing concrete types
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register records the port set a module exposes under its name
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs looks up name and asserts its port set to T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}
