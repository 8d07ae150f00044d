// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"

	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/config"
)

var (
	errChmodSocket = errors.New("failed to change unix socket permissions")
	errChownSocket = errors.New("failed to change unix socket ownership")
)

// listen opens the unix socket when one is configured and a TCP listener on
// host:port otherwise.
func listen(ctx context.Context) (net.Listener, error) {
	basic := config.Global.Basic
	lc := &net.ListenConfig{}

	if path := basic.UnixSocket; path != "" {
		ln, err := lc.Listen(ctx, "unix", path)
		if err != nil {
			return nil, fmt.Errorf("failed to listen on unix socket %s: %w", path, err)
		}

		if err := prepareSocket(path); err != nil {
			_ = ln.Close()

			return nil, err
		}

		log.Info().Str("socket", path).Msg("Listening on unix socket")

		return ln, nil
	}

	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(basic.Host, basic.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", net.JoinHostPort(basic.Host, basic.Port), err)
	}

	addr := ln.Addr().String()

	log.Info().
		Str("address", addr).
		Str("languages", "http://"+addr+"/api/v1/languages").
		Msg("Listening")

	return ln, nil
}

// prepareSocket applies the configured owner, group and mode to the socket at path.
func prepareSocket(path string) error {
	basic := config.Global.Basic

	uid, err := lookupID(basic.UnixSocketUser, lookupUser)
	if err != nil {
		return err
	}

	gid, err := lookupID(basic.UnixSocketGroup, lookupGroup)
	if err != nil {
		return err
	}

	if uid != -1 || gid != -1 {
		if err := os.Chown(path, uid, gid); err != nil {
			return fmt.Errorf("%w: %w", errChownSocket, err)
		}
	}

	if err := os.Chmod(path, basic.UnixSocketPermissions); err != nil {
		return fmt.Errorf("%w: %w", errChmodSocket, err)
	}

	return nil
}

func lookupUser(name string) (string, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return "", err
	}

	return u.Uid, nil
}

func lookupGroup(name string) (string, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		return "", err
	}

	return g.Gid, nil
}

// lookupID returns -1 for an empty value, the number for a numeric value and
// the id resolved by lookup for a name.
func lookupID(value string, lookup func(string) (string, error)) (int, error) {
	if value == "" {
		return -1, nil
	}

	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	raw, err := lookup(value)
	if err != nil {
		return -1, fmt.Errorf("failed to look up %q: %w", value, err)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return -1, fmt.Errorf("non-numeric id %q for %q: %w", raw, value, err)
	}

	return id, nil
}
