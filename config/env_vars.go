// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

var durationType = reflect.TypeFor[time.Duration]()

// readEnv fills the struct target points to from the variables named in its
// env tags, descending into untagged exported struct fields.
//
// A variable only fills a zero field unless its tag carries the "overwrite"
// option, in which case it replaces defaults and YAML values too.
func readEnv(target any) error {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", errExpectedPointerToStruct, target)
	}

	v := ptr.Elem()
	t := v.Type()

	for i := range t.NumField() {
		sf, field := t.Field(i), v.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, tagged := sf.Tag.Lookup("env")
		if !tagged {
			if field.Kind() == reflect.Struct {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		name, overwrite := parseEnvTag(tag)

		raw, ok := os.LookupEnv(name)
		if !ok || (!overwrite && !field.IsZero()) {
			continue
		}

		if err := setFromString(field, raw); err != nil {
			return fmt.Errorf("%s=%q (field %s): %w", name, raw, sf.Name, err)
		}
	}

	return nil
}

func parseEnvTag(tag string) (name string, overwrite bool) {
	name, opts, _ := strings.Cut(tag, ",")

	return name, slices.Contains(strings.Split(opts, ","), "overwrite")
}

// setFromString parses raw according to the kind of field. Slices of
// strings take a comma separated list; blank items are dropped.
func setFromString(field reflect.Value, raw string) error {
	switch kind := field.Kind(); {
	case field.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}

		field.SetInt(int64(d))
	case kind == reflect.String:
		field.SetString(raw)
	case field.CanInt():
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetInt(n)
	case field.CanFloat():
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetFloat(f)
	case kind == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		field.SetBool(b)
	case kind == reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return errUnsupportedSliceType
		}

		var items []string

		for item := range strings.SplitSeq(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}

		field.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("%w: %s", errUnsupportedFieldType, kind)
	}

	return nil
}

// useDotEnv loads the first .env file found in the working directory or
// next to the executable. A missing file is not an error.
func useDotEnv() error {
	var dirs []string

	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	} else {
		log.Warn().Err(err).Msg("Could not determine working directory")
	}

	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")

		loaded, err := tryLoadDotEnv(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Could not read .env file")

			continue
		}

		if loaded {
			break
		}
	}

	return nil
}

// tryLoadDotEnv exports the KEY=value lines of the file at path that are not
// already set in the environment. Values may be wrapped in matching single or
// double quotes. It reports whether the file exists.
func tryLoadDotEnv(path string) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- fixed file name in known directories
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	sc := bufio.NewScanner(bytes.NewReader(data))

	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			log.Warn().Str("path", path).Int("line", n).Msg("Ignoring malformed .env line")

			continue
		}

		key, value = strings.TrimSpace(key), unquote(strings.TrimSpace(value))

		if _, set := os.LookupEnv(key); set {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Could not export .env variable")
		}
	}

	if err := sc.Err(); err != nil {
		return true, fmt.Errorf("scan %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Loaded .env file")

	return true, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
