// Package checks holds the individual integrity checks run by the integrity
// feature. Each check is a plain function over the archive, the bucket or the
// database so it can run from the HTTP API and the CLI alike.
package checks
