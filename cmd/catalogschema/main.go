// Command catalogschema writes the attack catalog and its JSON schema.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/automoto/ordnance/shared/catalog"
)

func main() {
	var schemaPath, dumpPath string
	flag.StringVar(&schemaPath, "schema", "", "path to write the catalog JSON schema")
	flag.StringVar(&dumpPath, "dump", "", "path to write the catalog tables as JSON")
	flag.Parse()

	if schemaPath == "" && dumpPath == "" {
		fmt.Fprintln(os.Stderr, "one of --schema or --dump is required")
		os.Exit(1)
	}
	if err := catalog.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "catalog is inconsistent: %v\n", err)
		os.Exit(1)
	}

	if schemaPath != "" {
		if err := writeJSON(schemaPath, buildSchema()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
			os.Exit(1)
		}
	}
	if dumpPath != "" {
		if err := writeJSON(dumpPath, catalog.Export()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write catalog: %v\n", err)
			os.Exit(1)
		}
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(catalog.Catalog))
	schema.Title = "Ordnance Attack Catalog"
	schema.Description = "Attack, gun and projectile kind tables indexed by id"
	return schema
}

func writeJSON(outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}
