package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/bianoble/scriptpm/internal/sandbox"
	"github.com/bianoble/scriptpm/internal/script"
)

const catalogSchemaURL = "https://github.com/bianoble/scriptpm/schema/catalog.json"

const catalogSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "version", "hash"],
    "properties": {
      "id":      {"type": "string", "minLength": 1},
      "name":    {"type": "string", "minLength": 1},
      "version": {"type": "string", "minLength": 1},
      "hash":    {"type": "string"}
    }
  }
}`

var catalogSchema = mustCompileSchema(catalogSchemaURL, catalogSchemaJSON)

func mustCompileSchema(url, doc string) *jsonschema.Schema {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		panic(fmt.Sprintf("parsing schema %s: %v", url, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, parsed); err != nil {
		panic(fmt.Sprintf("adding schema %s: %v", url, err))
	}
	schema, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compiling schema %s: %v", url, err))
	}
	return schema
}

// CatalogFetcher downloads and validates the remote script manifest.
type CatalogFetcher struct {
	Transport
}

// Fetch returns the catalog in published order.
func (f *CatalogFetcher) Fetch(ctx context.Context, url string) ([]script.Record, error) {
	resp, cancel, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if f.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, f.MaxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &script.TransportError{URL: url, Err: fmt.Errorf("reading response: %w", err)}
	}
	if f.MaxSize > 0 && int64(len(data)) > f.MaxSize {
		return nil, &script.FormatError{Source: "catalog " + url, Err: fmt.Errorf("manifest exceeds max size %d bytes", f.MaxSize)}
	}

	return ParseCatalog(url, data)
}

// ParseCatalog decodes and validates a manifest payload. source names the
// payload in error messages.
func ParseCatalog(source string, data []byte) ([]script.Record, error) {
	label := "catalog " + source

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &script.FormatError{Source: label, Err: err}
	}
	if err := catalogSchema.Validate(doc); err != nil {
		return nil, &script.FormatError{Source: label, Err: err}
	}

	var records []script.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &script.FormatError{Source: label, Err: err}
	}

	if problems := ValidateCatalog(records); len(problems) > 0 {
		return nil, &script.FormatError{Source: label, Problems: problems}
	}

	if records == nil {
		records = []script.Record{}
	}
	return records, nil
}

// ValidateCatalog checks catalog entries for semantic correctness.
// Returns a list of problems (empty if valid).
func ValidateCatalog(records []script.Record) []string {
	var problems []string

	ids := make(map[string]bool)
	for i, r := range records {
		prefix := fmt.Sprintf("record[%d]", i)
		if r.Name != "" {
			prefix = fmt.Sprintf("script '%s'", r.Name)
		}

		if r.ID == "" {
			problems = append(problems, fmt.Sprintf("%s: 'id' is required", prefix))
		} else if ids[r.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate id '%s'", prefix, r.ID))
		} else {
			ids[r.ID] = true
		}

		if err := sandbox.ValidateName(r.Name); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", prefix, err))
		}

		if r.Version == "" {
			problems = append(problems, fmt.Sprintf("%s: 'version' is required", prefix))
		}
	}

	return problems
}
