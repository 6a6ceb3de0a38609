package boolnet

import "sort"

// Node is one named binary element of a regulatory network. Rule holds the
// normalized logic expression in &,|,! form; an empty Rule marks a constant
// or input placeholder.
type Node struct {
	Name    string
	Rule    string
	IsInput bool
}

type Network map[string]*Node

func (n Network) Has(name string) bool {
	_, ok := n[name]
	return ok
}

// Names returns the node names in sorted order so every iteration over the
// network is deterministic.
func (n Network) Names() []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n Network) Inputs() []string {
	inputs := make([]string, 0)
	for _, name := range n.Names() {
		if n[name].IsInput || n[name].Rule == "" {
			inputs = append(inputs, name)
		}
	}
	return inputs
}

func (n Network) Clone() Network {
	c := make(Network, len(n))
	for name, node := range n {
		copied := *node
		c[name] = &copied
	}
	return c
}
