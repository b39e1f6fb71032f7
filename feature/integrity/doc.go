// Package integrity provides health checks over the loaded archive and the
// sources the service reads from.
//
// # Checks Provided
//
//   - Backups: every file and search entry below the stage root has a backed up original value.
//   - Redirects: lists the entries currently pointing somewhere other than their original.
//   - Ordering: lists the folders whose child chain is not in canonical order.
//   - Storage: checks that the bucket holds the configured listing, hash names and params objects.
//   - Schema: validates that the params tables carry every column the loader reads.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/backups : Runs the backup coverage check.
//   - GET /integrity/redirects : Lists redirected entries.
//   - GET /integrity/ordering : Lists unsorted folders.
//   - GET /integrity/storage : Runs the storage check.
//   - GET /integrity/schema : Runs the params schema check.
package integrity
