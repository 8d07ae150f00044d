// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"codeberg.org/tscat/tscat/config"
)

// Logger carries sys=i18n. The first call to Setup initializes it.
var Logger zerolog.Logger

// reportedMissing holds "<locale>\x00<key>" for every missing message that
// was already logged.
var reportedMissing sync.Map

func strictMissingKeys() bool { return config.Global.Internationalization.StrictMissingKeys }

func includeUnfinished() bool { return config.Global.Catalogs.IncludeUnfinished }

// logMissingOnce warns about a missing translation the first time a
// (locale, key) pair is seen. It is a no-op unless strict mode is on.
func logMissingOnce(locale, key string) {
	if !strictMissingKeys() {
		return
	}

	if _, seen := reportedMissing.LoadOrStore(locale+"\x00"+key, struct{}{}); seen {
		return
	}

	Logger.Warn().Str("locale", locale).Str("key", key).Msg("Missing translation")
}

// strippedTagString keeps base, script and region of tag. The result labels
// metrics and log lines.
func strippedTagString(tag language.Tag) string {
	base, script, region := tag.Raw()

	t, err := language.Compose(base, script, region)
	if err != nil {
		return tag.String()
	}

	return t.String()
}
