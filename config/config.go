package config

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/0xalexb/hjarta-params/tree"
)

// DefaultMaxDiscoveryPasses bounds the collection loop when modules keep
// declaring parameters.
const DefaultMaxDiscoveryPasses = 64

type entry struct {
	path    tree.Path
	param   Param
	section string
}

// Config is a parameter registry together with the values collected for it.
//
// Collect calls are serialized. Declarations and reads may happen from any
// goroutine; no lock is held while checkers or section predicates run, so
// both may call back into the Config.
type Config struct {
	// collectMu serializes Collect so the discovery loop observes a
	// consistent parameter count.
	collectMu sync.Mutex
	mu        sync.RWMutex

	logger    *slog.Logger
	maxPasses int

	sections     map[string]*Section
	sectionOrder []string
	sectionPaths map[string][]tree.Path

	params map[string]*entry
	order  []string

	content map[string]any
	loaded  map[string]*Module
}

// Option configures a Config.
type Option func(*Config)

// WithLogger sets the logger used for collection diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxDiscoveryPasses bounds how many collection passes a single Collect
// may run before failing with ErrNonTerminatingDiscovery.
func WithMaxDiscoveryPasses(passes int) Option {
	return func(c *Config) {
		c.maxPasses = passes
	}
}

// New creates an empty Config.
func New(opts ...Option) *Config {
	cfg := &Config{
		collectMu:    sync.Mutex{},
		mu:           sync.RWMutex{},
		logger:       nil,
		maxPasses:    DefaultMaxDiscoveryPasses,
		sections:     map[string]*Section{},
		sectionOrder: nil,
		sectionPaths: map[string][]tree.Path{},
		params:       map[string]*entry{},
		order:        nil,
		content:      map[string]any{},
		loaded:       map[string]*Module{},
	}

	for _, apply := range opts {
		apply(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	if cfg.maxPasses < 1 {
		cfg.maxPasses = DefaultMaxDiscoveryPasses
	}

	return cfg
}

// DeclareSection registers the namespace with a description and returns its
// Section. Declaring the same namespace again replaces the description and
// predicate but keeps the parameters already declared under it.
func (c *Config) DeclareSection(namespace, desc string) *Section {
	section := &Section{config: c, ns: tree.P(namespace), desc: desc, enableIf: nil}
	key := section.ns.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sections[key]; !exists {
		c.sectionOrder = append(c.sectionOrder, key)
	}

	c.sections[key] = section

	return section
}

// DeclareParam registers param at the section's namespace followed by the
// dotted name. Declaring the same path again replaces the parameter.
func (c *Config) DeclareParam(section *Section, name string, param Param) {
	path := section.ns.Join(tree.P(name))
	sectionKey := section.ns.Key()
	key := path.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sections[sectionKey]; !exists {
		c.sectionOrder = append(c.sectionOrder, sectionKey)
		c.sections[sectionKey] = section
	}

	if _, exists := c.params[key]; !exists {
		c.order = append(c.order, key)
	}

	c.params[key] = &entry{path: path, param: param, section: sectionKey}
	c.sectionPaths[sectionKey] = append(c.sectionPaths[sectionKey], path)
}

// DeclareParams registers every parameter of the map in name order.
func (c *Config) DeclareParams(section *Section, params map[string]Param) {
	for _, name := range sortedKeys(params) {
		c.DeclareParam(section, name, params[name])
	}
}

// MaxDiscoveryPasses returns the bound set with WithMaxDiscoveryPasses.
func (c *Config) MaxDiscoveryPasses() int {
	return c.maxPasses
}

// Len returns the number of declared parameter paths.
func (c *Config) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.params)
}

// Paths returns the declared paths in declaration order.
func (c *Config) Paths() []tree.Path {
	entries := c.entries()

	paths := make([]tree.Path, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.path)
	}

	return paths
}

// Param returns the parameter declared at path.
func (c *Config) Param(path tree.Path) (Param, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.params[path.Key()]
	if !ok {
		return Param{}, false
	}

	return e.param, true
}

// Sections returns the declared sections in the order their namespaces first appeared.
func (c *Config) Sections() []*Section {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sections := make([]*Section, 0, len(c.sectionOrder))
	for _, key := range c.sectionOrder {
		sections = append(sections, c.sections[key])
	}

	return sections
}

// SectionPaths returns the paths declared under the section's namespace in
// declaration order. A path declared twice appears twice.
func (c *Config) SectionPaths(section *Section) []tree.Path {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := c.sectionPaths[section.ns.Key()]

	return append([]tree.Path(nil), paths...)
}

func (c *Config) entries() []entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, *c.params[key])
	}

	return entries
}

func (c *Config) lookup(path tree.Path) (entry, any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.params[path.Key()]
	if !ok {
		return entry{}, nil, false
	}

	return *e, c.content[path.Key()], true
}

func (c *Config) store(path tree.Path, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.content[path.Key()] = value
}

// enabled reports whether the section owning e is enabled.
func (c *Config) enabled(e entry) bool {
	c.mu.RLock()
	section := c.sections[e.section]
	c.mu.RUnlock()

	return section == nil || section.Enabled()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
