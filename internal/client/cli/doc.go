// Package cli provides the interactive dogshelter command-line client.
//
// It wires configuration and the HTTP API client into a REPL. Typical flow:
// register or log in, then list, add, adopt and remove dogs.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// stdin is closed. See runREPL for the command set.
package cli
