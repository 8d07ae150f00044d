// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n answers translation lookups from Qt Linguist .ts catalogs using
the same rules as QCoreApplication::translate.

# Quick start

Load the catalogs of a domain once at startup:

	err := i18n.Setup(os.DirFS("/usr/share/dde-calendar/translations"), ".", "dde-calendar")

and translate with the context (the UI class name) and the English source
text, exactly as they appear in the catalog:

	i18n.Tr(ctx, "CScheduleOperation", "Delete")
	i18n.TrC(ctx, "CSettingDialog", "All", "button") // disambiguation comment
	i18n.TrN(ctx, "CMonthView", "%n event(s)", n)

The locale comes from the [language.Tag] stored in ctx by [WithTag] or
resolved for a request by [FromRequest].

# Lookup rules

A message is looked up by (context, source, comment). When a comment is
given and no message matches, the lookup is retried without the comment.
Messages that are unfinished, vanished, obsolete or empty are treated as
missing, unless Catalogs.IncludeUnfinished is set, in which case unfinished
messages with text are used.

Missing translations return the source text unchanged. When
StrictMissingKeys is enabled, missing lookups are logged once per
locale+key and the returned text is visibly wrapped as "⟦...⟧".

# Formatting

In numerus lookups every %n is replaced by the count, and the form is
chosen with the CLDR cardinal rules of the locale (see package
core/numerus). Translations may also carry text/template placeholders,
filled from alternating key-value pairs:

	i18n.Tr(ctx, "AccountItem", "Signed in as {{.Name}}", "Name", user)

# Reloading

[Watch] reloads the catalogs when files in the directory change. Lookups
never block on a reload; they see either the old or the new set.
*/
package i18n
