// Package state owns the mutable boolean state of a network during a run:
// the current and next value of every node plus the fixed overlay that pins
// input nodes for the whole run.
package state

import (
	"math/rand"

	"github.com/san-kum/boolsim/internal/boolnet"
)

type Store struct {
	net     boolnet.Network
	names   []string
	current map[string]bool
	next    map[string]bool
	fixed   map[string]bool
}

func NewStore(net boolnet.Network) *Store {
	return &Store{
		net:     net,
		names:   net.Names(),
		current: make(map[string]bool, len(net)),
		next:    make(map[string]bool, len(net)),
		fixed:   make(map[string]bool),
	}
}

// Fix pins a node to value for the rest of the run. The pin takes effect
// immediately and is re-asserted on every reinitialization and every tick.
func (s *Store) Fix(name string, value bool) error {
	if !s.net.Has(name) {
		return &boolnet.ConfigError{Name: name, Wrapped: boolnet.ErrUnknownNode}
	}
	s.fixed[name] = value
	s.current[name] = value
	return nil
}

// Unfix clears a pin; the node keeps its current value but may drift again.
func (s *Store) Unfix(name string) {
	delete(s.fixed, name)
}

func (s *Store) IsFixed(name string) bool {
	_, ok := s.fixed[name]
	return ok
}

// InitializeRandom seeds every node for a fresh run. Fixed nodes get their
// pinned value unconditionally; nodes named in set get the given seed value
// (mutable thereafter); everything else draws uniformly from rng.
func (s *Store) InitializeRandom(set map[string]bool, rng *rand.Rand) {
	for _, name := range s.names {
		if v, ok := s.fixed[name]; ok {
			s.current[name] = v
			continue
		}
		if v, ok := set[name]; ok {
			s.current[name] = v
			continue
		}
		s.current[name] = rng.Intn(2) == 1
	}
}

func (s *Store) Get(name string) bool {
	return s.current[name]
}

func (s *Store) Set(name string, value bool) {
	if v, ok := s.fixed[name]; ok {
		s.current[name] = v
		return
	}
	s.current[name] = value
}

// Snapshot copies the current state. Schedulers that need a frozen view of
// step n-1 take one of these before touching anything.
func (s *Store) Snapshot() map[string]bool {
	snap := make(map[string]bool, len(s.current))
	for name, v := range s.current {
		snap[name] = v
	}
	return snap
}

// Current exposes the live state map for read-your-writes disciplines.
// Callers must go through Set for mutations so pins hold.
func (s *Store) Current() map[string]bool {
	return s.current
}

// StageNext buffers a value for the simultaneous commit of a synchronous step.
func (s *Store) StageNext(name string, value bool) {
	if v, ok := s.fixed[name]; ok {
		s.next[name] = v
		return
	}
	s.next[name] = value
}

// CommitNext applies every staged value at once, re-asserting pins, and
// clears the staging buffer.
func (s *Store) CommitNext() {
	for name, v := range s.next {
		if pinned, ok := s.fixed[name]; ok {
			v = pinned
		}
		s.current[name] = v
		delete(s.next, name)
	}
	for name, v := range s.fixed {
		s.current[name] = v
	}
}

// Names returns the node names in deterministic order.
func (s *Store) Names() []string {
	return s.names
}

func (s *Store) Network() boolnet.Network {
	return s.net
}
