// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// genconfig writes the example .env and YAML configuration files for the
// tscat server from the configuration defaults.
package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"

	"codeberg.org/tscat/tscat/config"
	"codeberg.org/tscat/tscat/core/audit"
)

const generatedNote = "# Generated by go run ./cmd/genconfig from the built-in defaults.\n"

// essential settings are written active; everything else is commented out.
var (
	essentialEnv  = []string{"TSCAT_HOST", "TSCAT_PORT", "TSCAT_CATALOG_DIR", "TSCAT_CATALOG_DOMAIN"}
	essentialYAML = []string{"host", "port", "dir", "domain"}
)

func main() {
	audit.SetDefaultLogger()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("genconfig failed")
	}
}

func run() error {
	outDir := flag.String("out", "deploy", "directory to write the example files to")
	flag.Parse()

	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	yamlText, err := renderYAML(cfg)
	if err != nil {
		return fmt.Errorf("render YAML: %w", err)
	}

	files := []struct{ name, content string }{
		{".env.example", renderEnv(cfg)},
		{"config.yaml.example", yamlText},
	}

	for _, f := range files {
		path := filepath.Join(*outDir, f.name)
		if err := renameio.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return err
		}

		log.Info().Str("path", path).Msg("Wrote example configuration")
	}

	return nil
}

// renderEnv emits one "## <Section>" block per configuration section with
// its env-tagged fields.
func renderEnv(cfg *config.ServerConfig) string {
	var sb strings.Builder

	sb.WriteString("# tscat environment configuration. Copy to .env and adjust.\n")
	sb.WriteString(generatedNote)

	root := reflect.ValueOf(cfg).Elem()

	for i := range root.NumField() {
		name, section := root.Type().Field(i).Name, root.Field(i)
		if section.Kind() != reflect.Struct || name == "Build" {
			continue
		}

		lines := envLines(section)
		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "\n## %s\n%s", name, strings.Join(lines, ""))
	}

	return sb.String()
}

func envLines(section reflect.Value) []string {
	var lines []string

	for i := range section.NumField() {
		tag, ok := section.Type().Field(i).Tag.Lookup("env")
		if !ok {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		value := section.Field(i)

		var line string

		switch {
		case slices.Contains(essentialEnv, name):
			line = fmt.Sprintf("%s=%q\n", name, fmt.Sprint(value.Interface()))
		case value.Kind() == reflect.Slice, value.Kind() == reflect.String && value.Len() == 0:
			line = "# " + name + "=\n"
		default:
			line = fmt.Sprintf("# %s=%v\n", name, value.Interface())
		}

		lines = append(lines, line)
	}

	return lines
}

// renderYAML marshals cfg and comments out every nested key that is not
// essential. Top level keys stay as section headers.
func renderYAML(cfg *config.ServerConfig) (string, error) {
	raw, err := yaml.MarshalWithOptions(cfg, config.GetDurationEncoderOption(), yaml.Indent(2))
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("# tscat file configuration. Copy to config.yaml and adjust.\n")
	sb.WriteString(generatedNote)

	for line := range strings.Lines(string(raw)) {
		line = strings.TrimRight(line, "\n")

		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		switch {
		case body == "":
		case indent == "":
			sb.WriteString("\n" + line + "\n")
		case isEssentialKey(body):
			sb.WriteString(line + "\n")
		default:
			sb.WriteString(indent + "# " + body + "\n")
		}
	}

	return sb.String(), nil
}

func isEssentialKey(body string) bool {
	key, _, ok := strings.Cut(body, ":")

	return ok && slices.Contains(essentialYAML, key)
}
