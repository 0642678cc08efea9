package check

import (
	"strings"
)

// Importer loads named modules and the symbols they export.
// *config.Config implements it.
type Importer interface {
	// Import loads the module called name and returns its handle.
	// Loading the same name twice returns the same handle without side effects.
	Import(name string) (any, error)
	// Lookup returns the symbol exported by a module, loading the module first.
	Lookup(module, symbol string) (any, error)
}

type moduleChecker struct {
	importer Importer
}

// Module interprets a string as a module name, loads it and returns the
// module handle. Loading may declare additional parameters.
func Module(importer Importer) Checker {
	return moduleChecker{importer: importer}
}

func (m moduleChecker) Check(value any) (any, error) {
	name, ok := value.(string)
	if !ok {
		return nil, failf("%v (%T) is not a module name", value, value)
	}

	handle, err := m.importer.Import(name)
	if err != nil {
		return nil, failf("importing %q: %v", name, err)
	}

	return handle, nil
}

func (moduleChecker) Help() string { return "an importable module" }

type importedObject struct {
	importer Importer
}

// ImportedObject interprets a string "module.symbol" as a symbol exported by
// a module. The last dotted segment names the symbol, the rest the module.
func ImportedObject(importer Importer) Checker {
	return importedObject{importer: importer}
}

func (o importedObject) Check(value any) (any, error) {
	name, ok := value.(string)
	if !ok {
		return nil, failf("%v (%T) is not an object name", value, value)
	}

	cut := strings.LastIndex(name, ".")
	if cut <= 0 || cut == len(name)-1 {
		return nil, failf("%q is not of the form module.symbol", name)
	}

	object, err := o.importer.Lookup(name[:cut], name[cut+1:])
	if err != nil {
		return nil, failf("importing %q: %v", name, err)
	}

	return object, nil
}

func (importedObject) Help() string { return "an importable object" }
