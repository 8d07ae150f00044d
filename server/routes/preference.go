// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"codeberg.org/tscat/tscat/i18n"
)

// Language cookies expire 30 days after they are set.
const cookieMaxAge = 30 * 24 * time.Hour

// Clear a cookie by setting its expiration date to this.
var cookieExpireDelete = time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

type preferenceResponse struct {
	Language string `json:"language"`
	Auto     bool   `json:"auto,omitempty"`
}

// SetLanguage stores the preferred language from the lang query parameter in
// a cookie read by later requests. "auto" or an empty value clears it, so
// the Accept-Language header decides again.
func SetLanguage(w http.ResponseWriter, r *http.Request) error {
	raw := strings.TrimSpace(r.URL.Query().Get(i18n.LangParam))

	if raw == "" || strings.EqualFold(raw, "auto") {
		setLanguageCookie(w, r, "", cookieExpireDelete)

		return writeJSON(w, preferenceResponse{Language: i18n.FromRequest(withoutLanguageCookie(r)).String(), Auto: true})
	}

	tag, err := i18n.ParseLocale(raw)
	if err != nil {
		return NewHTTPError(http.StatusBadRequest,
			i18n.NewUserError(r.Context(), messageContext, "Invalid language {{.Lang}}", "Lang", strconv.Quote(raw)))
	}

	loc, ok := i18n.Match(tag)
	if !ok {
		return NewHTTPError(http.StatusNotFound,
			i18n.NewUserError(r.Context(), messageContext, "No catalog for language {{.Lang}}", "Lang", tag.String()))
	}

	setLanguageCookie(w, r, loc.Tag.String(), time.Now().Add(cookieMaxAge))

	return writeJSON(w, preferenceResponse{Language: loc.Tag.String()})
}

func setLanguageCookie(w http.ResponseWriter, r *http.Request, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.LangParam,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   isConnectionSecure(r),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// withoutLanguageCookie returns a copy of r that carries neither the lang
// cookie nor the lang query parameter.
func withoutLanguageCookie(r *http.Request) *http.Request {
	r2 := r.Clone(r.Context())
	r2.Header.Del("Cookie")

	for _, c := range r.Cookies() {
		if c.Name != i18n.LangParam {
			r2.AddCookie(c)
		}
	}

	q := r2.URL.Query()
	q.Del(i18n.LangParam)
	r2.URL.RawQuery = q.Encode()

	return r2
}

// isConnectionSecure reports whether the client reached us over TLS. The
// X-Forwarded-Proto header is only trusted from private and loopback peers.
func isConnectionSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}

	return (ip.IsPrivate() || ip.IsLoopback()) && r.Header.Get("X-Forwarded-Proto") == "https"
}
