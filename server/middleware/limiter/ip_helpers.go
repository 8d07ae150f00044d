// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientAddr returns the address the request is accounted to. X-Real-IP and
// then the last X-Forwarded-For hop are honoured only when the peer is a
// local proxy: a loopback or private address, or a unix socket.
func clientAddr(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}

	if !trustedPeer(peer) {
		return peer
	}

	if v := strings.TrimSpace(r.Header.Get("X-Real-IP")); v != "" {
		return v
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
			return last
		}
	}

	return peer
}

func trustedPeer(peer string) bool {
	if peer == "" || peer == "@" {
		return true
	}

	addr, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}

	return addr.IsPrivate() || addr.IsLoopback()
}

// passListed reports whether addr equals an entry of list or falls inside
// one of its prefixes.
func passListed(addr string, list []string) bool {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}

	ip = ip.Unmap()

	for _, entry := range list {
		if strings.Contains(entry, "/") {
			if prefix, err := netip.ParsePrefix(entry); err == nil && prefix.Contains(ip) {
				return true
			}

			continue
		}

		if other, err := netip.ParseAddr(entry); err == nil && other.Unmap() == ip {
			return true
		}
	}

	return false
}
