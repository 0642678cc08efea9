// Package file reads configuration files for config.Decode.
//
// A Fetcher reads its file once, when constructed, and serves copies of the
// bytes afterwards, so a file edited while the program runs does not change
// the parameters collected from it:
//
//	fetcher, err := file.NewFetcher("train.yaml")()
//	if err != nil {
//	    return err
//	}
//	raw, err := config.Decode(fetcher, jsonparser.NewParser(), yamlparser.NewParser())
//
// The path "-" reads standard input instead. Use errors.Is with
// ErrPathIsDirectory to tell a directory from a missing file.
package file
