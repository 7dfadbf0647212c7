package refs

import (
	"encoding/json"
	"sort"
)

// Registry accumulates the names of every type reachable from a document
// set. It drives what the downstream generators must emit. One instance is
// created per generation run; concurrent runs must not share an instance.
type Registry struct {
	objects   nameSet
	fragments nameSet
	enums     nameSet
	inputs    nameSet
	scalars   nameSet
	// operations mirrors the other categories but no registration path
	// populates it yet.
	operations nameSet
}

func NewRegistry() *Registry {
	return &Registry{
		objects:    nameSet{},
		fragments:  nameSet{},
		enums:      nameSet{},
		inputs:     nameSet{},
		scalars:    nameSet{},
		operations: nameSet{},
	}
}

// Registration is idempotent and never fails; the caller is responsible for
// the validity of name.

func (r *Registry) RegisterType(name string)     { r.objects.add(name) }
func (r *Registry) RegisterFragment(name string) { r.fragments.add(name) }
func (r *Registry) RegisterEnum(name string)     { r.enums.add(name) }
func (r *Registry) RegisterInput(name string)    { r.inputs.add(name) }
func (r *Registry) RegisterScalar(name string)   { r.scalars.add(name) }

func (r *Registry) Objects() []string   { return r.objects.sorted() }
func (r *Registry) Fragments() []string { return r.fragments.sorted() }
func (r *Registry) Enums() []string     { return r.enums.sorted() }
func (r *Registry) Inputs() []string    { return r.inputs.sorted() }
func (r *Registry) Scalars() []string   { return r.scalars.sorted() }

func (r *Registry) HasFragment(name string) bool { return r.fragments.has(name) }
func (r *Registry) HasScalar(name string) bool   { return r.scalars.has(name) }
func (r *Registry) HasEnum(name string) bool     { return r.enums.has(name) }
func (r *Registry) HasInput(name string) bool    { return r.inputs.has(name) }

// Snapshot is the read-only JSON view of a registry after a run.
type Snapshot struct {
	Objects   []string `json:"objects"`
	Fragments []string `json:"fragments"`
	Enums     []string `json:"enums"`
	Inputs    []string `json:"inputs"`
	Scalars   []string `json:"scalars"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Objects:   r.Objects(),
		Fragments: r.Fragments(),
		Enums:     r.Enums(),
		Inputs:    r.Inputs(),
		Scalars:   r.Scalars(),
	}
}

func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Snapshot())
}

type nameSet map[string]struct{}

func (s nameSet) add(name string)    { s[name] = struct{}{} }
func (s nameSet) has(name string) bool { _, ok := s[name]; return ok }

func (s nameSet) sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
