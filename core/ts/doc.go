// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package ts reads and writes Qt Linguist translation source files (.ts).

A .ts file is an XML message catalog produced by lupdate and edited by
translators:

	<?xml version="1.0" encoding="utf-8"?>
	<!DOCTYPE TS>
	<TS version="2.1" language="pl">
	<context>
	    <name>AccountItem</name>
	    <message>
	        <location filename="../src/accountitem.cpp" line="56"/>
	        <source>Sync successful</source>
	        <translation>Synchronizacja zakończona</translation>
	    </message>
	</context>
	</TS>

Messages are grouped by context (the originating UI class) and identified by
the triple (context, source, comment), see [Key]. A translation marked
type="unfinished" has not been supplied or reviewed by a localizer yet.

[Decode] is lenient about structure so that broken catalogs can still be
inspected by package lint; it only fails on XML that is not well-formed or a
root element other than <TS>. [Encode] writes the layout lupdate uses so that
re-encoded files produce minimal diffs.
*/
package ts
