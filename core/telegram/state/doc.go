// Package state provides a mutex-guarded keyed table for per-user bot state.
// Rows are created lazily and live until deleted.
package state
