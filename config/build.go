// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of tscat.
const BuildVersion string = "v0.3.0"

// buildInfo holds the VCS stamp the Go toolchain embeds in the binary.
type buildInfo struct {
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision returns "<date>-<short hash>[+dirty]", or "unknown" outside a
// VCS build.
func (b *buildInfo) Revision() string {
	const shortHash = 8

	if len(b.VcsRevision) < shortHash {
		return "unknown"
	}

	date, _, _ := strings.Cut(b.VcsTime, "T")

	var sb strings.Builder

	sb.WriteString(date)
	sb.WriteByte('-')
	sb.WriteString(b.VcsRevision[:shortHash])

	if b.VcsModified {
		sb.WriteString("+dirty")
	}

	return sb.String()
}

func (b *buildInfo) load() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			b.VcsRevision = setting.Value
		case "vcs.time":
			b.VcsTime = setting.Value
		case "vcs.modified":
			b.VcsModified = setting.Value == "true"
		}
	}
}
