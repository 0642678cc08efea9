// Package inject calls functions with arguments taken from a config.Config.
//
// Go functions do not carry parameter names at run time, so New takes them
// explicitly. Bindings then map parameter paths to those names:
//
//	train := inject.New(func(lr float64, steps int) error { ... }, "lr", "steps").
//	    Param("lr").
//	    Param("steps").
//	    Section("optimizer")
//
//	results, err := train.Call(inject.Arg("steps", 10))
//
// Section applies a namespace to the trailing run of bindings that have none
// yet, so bindings and sections compose the way nested scopes do: a later
// Section never reaches past a binding that already has a namespace.
//
// At call time every binding whose name was not passed explicitly is resolved
// from the configuration. Explicit named arguments always win; absent optional
// parameters are not injected.
package inject
