// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber application itself; this package only
// defines the settings it reads: the bind address and the API key protecting
// every route except the Swagger documentation.
package server
