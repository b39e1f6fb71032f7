// Package names maps path hashes back to the strings they were built from.
//
// The table is optional: every consumer must work with an empty one, falling
// back to hexadecimal output and hash ordering. It is loaded from a plain text
// file with one string per line (the community "Hashes_all" list), either
// from disk or from object storage, and is built at most once even when many
// callers ask for it concurrently.
//
// # Usage
//
//	loader := names.NewLoader(cfg, storage.Opener(cfg.Source, client, bucket))
//	table, err := loader.Get(ctx)
//	s, ok := table.Resolve(hash40.New("stage"))
package names
