// Package persistence provides runtime state persistence for ledly controllers.
//
// The state file is JSON and remembers, per peripheral address, the user alias
// and the write characteristic chosen for it, so they survive restarts.
package persistence
