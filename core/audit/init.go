// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package audit holds the logging helpers shared by the server and the CLI.
package audit

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger logs to stderr until a configuration is loaded.
func SetDefaultLogger() {
	log.Logger = log.Output(ConsoleWriter(os.Stderr))
}

// ConsoleWriter renders log events for humans. Colors are enabled only when f
// is a terminal, and then request logs are condensed to a single
// "<status> <method> <url>" message.
func ConsoleWriter(f *os.File) io.Writer {
	fd := f.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	w := zerolog.ConsoleWriter{Out: f, NoColor: !color, TimeFormat: time.DateTime}
	if color {
		w.FormatPrepare = condenseRequest
	}

	return w
}

func condenseRequest(fields map[string]any) error {
	if fields["sys"] != "http" {
		return nil
	}

	fields[zerolog.MessageFieldName] = fmt.Sprintf("%v %-5s %s", fields["status_code"], fields["method"], fields["url"])

	for _, k := range []string{"sys", "method", "status_code", "url"} {
		delete(fields, k)
	}

	return nil
}
