package symdict

import (
	"sync"

	"github.com/dam/spot/varalloc"
)

// Client is an opaque per-registrant identity, handed out by NewClient.
// Automata compare clients by value identity only — they never inspect or
// type-assert a Client, matching spec §9's "opaque client identity".
type Client struct {
	id *int
}

// NewClient returns a fresh, globally unique Client handle.
func NewClient() Client {
	return Client{id: new(int)}
}

// Dictionary is the symbolic dictionary boundary the core consumes (spec
// §6): a namespace mapping named propositions and acceptance markers onto
// BDD variables, reference-counted per client.
type Dictionary interface {
	// RegisterProposition returns the BDD variable for the named
	// proposition, allocating one if this is the first registration.
	RegisterProposition(id string, client Client) (int, error)
	// RegisterAcceptanceMarker returns the BDD variable for the named
	// acceptance marker, allocating one if this is the first registration.
	RegisterAcceptanceMarker(id string, client Client) (int, error)
	// UnregisterAll releases every variable client holds, coalescing back
	// into the underlying allocator's free list once no client holds it.
	UnregisterAll(client Client)
	// AccMap looks up an already-registered acceptance marker's variable.
	AccMap(id string) (int, bool)
}

type entryKind uint8

const (
	kindProposition entryKind = iota
	kindAcceptance
)

// Dict is the package's Dictionary implementation. taa.New does not pick a
// dictionary itself; callers pass one in, typically a Dict.
type Dict struct {
	mu sync.Mutex

	alloc *varalloc.Allocator

	propVar map[string]int
	accVar  map[string]int
	varKind map[int]entryKind
	varName map[int]string

	holders    map[int]map[Client]struct{}
	clientVars map[Client]map[int]struct{}
}

// New creates a Dict backed by alloc for variable allocation.
func New(alloc *varalloc.Allocator) *Dict {
	return &Dict{
		alloc:      alloc,
		propVar:    make(map[string]int),
		accVar:     make(map[string]int),
		varKind:    make(map[int]entryKind),
		varName:    make(map[int]string),
		holders:    make(map[int]map[Client]struct{}),
		clientVars: make(map[Client]map[int]struct{}),
	}
}

func (d *Dict) register(names map[string]int, kind entryKind, id string, client Client) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := names[id]
	if !ok {
		base, err := d.alloc.Allocate(1)
		if err != nil {
			return 0, err
		}
		v = base
		names[id] = v
		d.varKind[v] = kind
		d.varName[v] = id
		d.holders[v] = make(map[Client]struct{})
	}
	d.holders[v][client] = struct{}{}

	if d.clientVars[client] == nil {
		d.clientVars[client] = make(map[int]struct{})
	}
	d.clientVars[client][v] = struct{}{}

	return v, nil
}

// RegisterProposition implements Dictionary.
func (d *Dict) RegisterProposition(id string, client Client) (int, error) {
	return d.register(d.propVar, kindProposition, id, client)
}

// RegisterAcceptanceMarker implements Dictionary.
func (d *Dict) RegisterAcceptanceMarker(id string, client Client) (int, error) {
	return d.register(d.accVar, kindAcceptance, id, client)
}

// AccMap implements Dictionary.
func (d *Dict) AccMap(id string) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.accVar[id]
	return v, ok
}

// UnregisterAll implements Dictionary.
func (d *Dict) UnregisterAll(client Client) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for v := range d.clientVars[client] {
		holders := d.holders[v]
		delete(holders, client)
		if len(holders) > 0 {
			continue
		}
		// Last holder gone: release the variable and forget its name.
		delete(d.holders, v)
		name := d.varName[v]
		switch d.varKind[v] {
		case kindProposition:
			delete(d.propVar, name)
		case kindAcceptance:
			delete(d.accVar, name)
		}
		delete(d.varKind, v)
		delete(d.varName, v)
		_ = d.alloc.Release(v, 1)
	}
	delete(d.clientVars, client)
}
