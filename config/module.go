package config

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Module is a loadable unit selected by name at configuration time, the way
// database/sql selects drivers. Setup runs the first time a Config imports the
// module and typically declares the module's own sections and parameters.
// Setup must not call Collect.
type Module struct {
	Name    string
	Setup   func(cfg *Config) error
	Symbols map[string]any
}

// Symbol returns an exported symbol of the module.
func (m *Module) Symbol(name string) (any, bool) {
	symbol, ok := m.Symbols[name]

	return symbol, ok
}

//nolint:gochecknoglobals // process-wide module catalog, filled from init functions.
var (
	catalogMu sync.RWMutex
	catalog   = map[string]Module{}
)

// RegisterModule makes a module available to every Config under name.
// It panics if name is empty or already registered.
func RegisterModule(name string, module Module) {
	catalogMu.Lock()
	defer catalogMu.Unlock()

	if name == "" {
		panic("config: RegisterModule with empty name")
	}

	if _, dup := catalog[name]; dup {
		panic("config: RegisterModule called twice for " + name)
	}

	module.Name = name
	catalog[name] = module
}

// Modules returns the registered module names in lexical order.
func Modules() []string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Import loads the module registered under name and returns its *Module
// handle. Each Config loads a module at most once; later imports return the
// same handle without running Setup again.
func (c *Config) Import(name string) (any, error) {
	c.mu.Lock()

	if loaded, ok := c.loaded[name]; ok {
		c.mu.Unlock()

		return loaded, nil
	}

	catalogMu.RLock()
	registered, ok := catalog[name]
	catalogMu.RUnlock()

	if !ok {
		c.mu.Unlock()

		return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
	}

	module := &registered
	c.loaded[name] = module
	c.mu.Unlock()

	if module.Setup == nil {
		return module, nil
	}

	c.logger.Debug("loading module", slog.String("module", name))

	err := module.Setup(c)
	if err != nil {
		c.mu.Lock()
		delete(c.loaded, name)
		c.mu.Unlock()

		return nil, fmt.Errorf("loading module %q: %w", name, err)
	}

	return module, nil
}

// Lookup imports module and returns the named symbol it exports.
func (c *Config) Lookup(module, symbol string) (any, error) {
	handle, err := c.Import(module)
	if err != nil {
		return nil, err
	}

	object, ok := handle.(*Module).Symbol(symbol) //nolint:forcetypeassert // Import only returns *Module
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrSymbolNotFound, module, symbol)
	}

	return object, nil
}
