package velux

import (
	"strings"

	"github.com/samber/oops"
)

// Constructor creates a fresh module instance.
type Constructor func() Module

// Entry is a named constructor in a [Catalogue].
type Entry struct {
	Name string
	New  Constructor
}

// Catalogue is the ordered, compiled-in set of modules the registry may
// instantiate. Names are unique ignoring case, since the lower-cased name is
// the configuration file stem.
type Catalogue struct {
	entries []Entry
	names   map[string]struct{}
}

var defaultCatalogue = NewCatalogue()

// NewCatalogue creates a catalogue holding entries in the given order.
func NewCatalogue(entries ...Entry) *Catalogue {
	c := &Catalogue{
		names: make(map[string]struct{}, len(entries)),
	}

	for _, entry := range entries {
		c.Register(entry.Name, entry.New)
	}

	return c
}

// Register appends a constructor. It panics on an empty name, a nil
// constructor or a duplicate name.
func (c *Catalogue) Register(name string, ctor Constructor) {
	if name == "" {
		panic(oops.Errorf("module name must not be empty"))
	}

	if ctor == nil {
		panic(oops.With("module", name).Errorf("module constructor must not be nil"))
	}

	key := strings.ToLower(name)
	if _, ok := c.names[key]; ok {
		panic(oops.With("module", name).Errorf("module registered twice"))
	}

	c.names[key] = struct{}{}
	c.entries = append(c.entries, Entry{Name: name, New: ctor})
}

// Entries returns the entries in registration order.
func (c *Catalogue) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns the registered names in registration order.
func (c *Catalogue) Names() []string {
	out := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry.Name)
	}
	return out
}

// Len returns the number of entries.
func (c *Catalogue) Len() int {
	return len(c.entries)
}

// Register adds a module constructor to the default catalogue. Module packages
// call it from init().
func Register(name string, ctor Constructor) {
	defaultCatalogue.Register(name, ctor)
}

// DefaultCatalogue returns the process-wide catalogue filled by [Register].
func DefaultCatalogue() *Catalogue {
	return defaultCatalogue
}
