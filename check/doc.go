// Package check provides composable value checkers.
//
// A Checker coerces and validates a raw value in one step: Check returns the
// value to use or an error wrapping ErrCheck. Help describes the constraint
// for help and error tables, composed structurally:
//
//	check.And(check.Int(), check.InRange(0, 10)).Help()
//	// an int and between 0 and 10
//
// Of is the factory used by parameter declarations. It accepts a Checker as
// is, and treats the Go types int, float64, string and bool (as reflect.Type
// or reflect.Kind) as shorthand for Int, Float, Str and Bool.
//
// Module and ImportedObject resolve names through an Importer. Loading a
// module may declare new parameters, which is why configuration collection
// repeats until no more parameters appear.
package check
