package resolver

// PrecedenceChain is a total precedence order over an application's plugin
// set, lowest to highest. Every (possibly transitive) dependency of a
// plugin precedes it in the chain. A chain is produced once per successful
// resolution and never mutated afterwards.
type PrecedenceChain struct {
	plugins []string
	index   map[string]int
}

func newChain(plugins []string) *PrecedenceChain {
	c := &PrecedenceChain{
		plugins: append([]string(nil), plugins...),
		index:   make(map[string]int, len(plugins)),
	}
	for i, name := range c.plugins {
		c.index[name] = i
	}
	return c
}

// Plugins returns the chain, lowest to highest precedence. The returned
// slice is a copy.
func (c *PrecedenceChain) Plugins() []string {
	return append([]string(nil), c.plugins...)
}

// Index returns the precedence position of a plugin, or -1 if it is not
// part of the chain.
func (c *PrecedenceChain) Index(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Contains reports whether the chain includes the plugin.
func (c *PrecedenceChain) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of plugins in the chain.
func (c *PrecedenceChain) Len() int {
	return len(c.plugins)
}
