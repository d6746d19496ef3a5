package world

import (
	"fmt"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
)

// Registry assigns runtime IDs to block identities. Air always has runtime
// ID 0. The zero value is not usable; use NewRegistry.
type Registry struct {
	names []Identity
	// hashes maps the xxhash of an identity to its runtime ID.
	hashes *intintmap.Map
}

// NewRegistry creates a Registry holding only Air.
func NewRegistry() *Registry {
	r := &Registry{hashes: intintmap.New(64, 0.75)}
	r.Register(Air)
	return r
}

// Register returns the runtime ID of the identity, assigning a new one if it
// was not registered yet.
func (r *Registry) Register(id Identity) uint32 {
	h := identityHash(id)
	if rid, ok := r.hashes.Get(h); ok {
		if r.names[rid] != id {
			panic(fmt.Sprintf("block identity hash collision: %v and %v", r.names[rid], id))
		}
		return uint32(rid)
	}
	rid := uint32(len(r.names))
	r.names = append(r.names, id)
	r.hashes.Put(h, int64(rid))
	return rid
}

// RuntimeID looks up the runtime ID of an identity. False is returned if the
// identity was never registered.
func (r *Registry) RuntimeID(id Identity) (uint32, bool) {
	rid, ok := r.hashes.Get(identityHash(id))
	if !ok || r.names[rid] != id {
		return 0, false
	}
	return uint32(rid), true
}

// Identity returns the identity registered under a runtime ID.
func (r *Registry) Identity(rid uint32) (Identity, bool) {
	if int(rid) >= len(r.names) {
		return Air, false
	}
	return r.names[rid], true
}

// Len returns the number of registered identities, including Air.
func (r *Registry) Len() int {
	return len(r.names)
}

func identityHash(id Identity) int64 {
	return int64(xxhash.Sum64String(string(id)))
}
