// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package numerus

import (
	"golang.org/x/text/language"
)

// gettextRules holds Plural-Forms expressions whose form order matches Forms.
var gettextRules = map[string]string{
	"ar": "nplurals=6; plural=(n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5);",
	"cs": "nplurals=3; plural=(n==1 ? 0 : n>=2 && n<=4 ? 1 : 2);",
	"fr": "nplurals=2; plural=(n > 1);",
	"pl": "nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"ru": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
	"uk": "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
}

const (
	singleForm = "nplurals=1; plural=0;"
	oneOther   = "nplurals=2; plural=(n != 1);"
)

// GettextRule returns the gettext Plural-Forms header value for tag. It
// reports false when the language has no known expression.
func GettextRule(tag language.Tag) (string, bool) {
	base, _ := tag.Base()
	if rule, ok := gettextRules[base.String()]; ok {
		return rule, true
	}

	switch Count(tag) {
	case 1:
		return singleForm, true
	case 2:
		// Only valid when the second form covers zero as well.
		if Index(tag, 0) == 1 && Index(tag, 1) == 0 && Index(tag, 2) == 1 {
			return oneOther, true
		}
	}

	return "", false
}
