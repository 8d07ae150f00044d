// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lint checks Qt Linguist catalogs for problems that break loading or
the translator workflow.

The structural rules are:

  - xml-malformed: the file is not a well-formed TS document.
  - ts-version, language-missing, language-invalid, language-mismatch:
    problems with the <TS> attributes.
  - empty-context-name, empty-source: required text is missing.
  - duplicate-key: two messages share (context, source, comment).
  - invalid-type: the translation type attribute is not one Qt knows.

The translation rules only look at active messages:

  - unfinished: the translation still needs a localizer. Reported as info
    so that it can be counted without failing a build.
  - empty-translation: marked finished but empty.
  - placeholder-mismatch: %1..%99 or %n markers differ from the source.
  - markup-mismatch: rich text tags differ from the source.
  - numerus-forms: the number of plural forms does not match the language.
  - whitespace-mismatch: leading or trailing whitespace differs.
*/
package lint
