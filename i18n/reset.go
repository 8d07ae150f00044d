// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build test

/*
This file is included only when built with '-tags test'.
It provides a reset hook for unit tests. It is not part of production builds.
*/

package i18n

// ResetForTests clears global state so that tests can observe the behaviour
// of the package before Setup.
//
// Usage:
//
//	go test -tags test ./...
//
// Concurrency: only call from tests before spinning up any goroutines that
// use this package. After resetting, call Setup again to initialize.
func ResetForTests() {
	reportedMissing.Clear()
	templateCache.Clear()
	current.Store(nil)
}
