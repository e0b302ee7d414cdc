package models

import "fmt"

// Backend selects which collaborators serve the intake operations.
type Backend string

const (
	BackendStore      Backend = "store"
	BackendDispatcher Backend = "dispatcher"
	BackendBoth       Backend = "both"
)

func ParseBackend(value string) (Backend, error) {
	switch backend := Backend(value); backend {
	case BackendStore, BackendDispatcher, BackendBoth:
		return backend, nil
	default:
		return "", fmt.Errorf("unknown backend %q: want store, dispatcher or both", value)
	}
}

func (b Backend) UsesStore() bool {
	return b == BackendStore || b == BackendBoth
}

func (b Backend) UsesDispatcher() bool {
	return b == BackendDispatcher || b == BackendBoth
}
