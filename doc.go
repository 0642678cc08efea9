// Package params runs an Fx application on top of declared, resolved
// parameters.
//
// The application's *config.Config is provided to the graph after every
// source passed to WithSources has been collected and every parameter
// validated, so a missing or invalid value stops the application before any
// constructor sees it. Value, Bind and Invoke hand resolved values to
// constructors and functions.
package params
