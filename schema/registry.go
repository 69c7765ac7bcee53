package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
)

//go:embed schemas/*.json
var embeddedSchemas embed.FS

// Registry resolves operation names to compiled JSON schemas.
//
// The schema directory is listed once, when the Registry is created, and each file is assigned
// to the family named by its prefix. Compiled schemas are cached per family. A Registry is safe
// for concurrent use.
type Registry struct {
	fs         afero.Fs
	operations map[string]string
	files      map[string]string
	compiled   sync.Map
}

// NewRegistry creates a Registry for the schema files in dir. Only families referenced by
// operations are considered; if two files belong to one of those families, it returns an
// *AmbiguousSchemaError.
func NewRegistry(fsys afero.Fs, dir string, operations map[string]string) (*Registry, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list schema directory %q: %w", dir, err)
	}

	wanted := make(map[string]bool)
	ops := make(map[string]string, len(operations))
	for op, family := range operations {
		wanted[family] = true
		ops[op] = family
	}

	matches := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		family := familyOf(entry.Name())
		if !wanted[family] {
			continue
		}
		matches[family] = append(matches[family], path.Join(dir, entry.Name()))
	}

	files := make(map[string]string, len(matches))
	for family, paths := range matches {
		if len(paths) > 1 {
			sort.Strings(paths)
			return nil, &AmbiguousSchemaError{Family: family, Files: paths}
		}
		files[family] = paths[0]
	}

	return &Registry{fs: fsys, operations: ops, files: files}, nil
}

// DefaultRegistry creates a Registry for the schemas built into this package, using the default
// operation table.
func DefaultRegistry() (*Registry, error) {
	sub, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		return nil, err
	}
	return NewRegistry(afero.FromIOFS{FS: sub}, ".", defaultOperations)
}

// DirectoryRegistry creates a Registry for the schema files in a directory on disk, using the
// default operation table.
func DirectoryRegistry(dir string) (*Registry, error) {
	return NewRegistry(afero.NewReadOnlyFs(afero.NewOsFs()), dir, defaultOperations)
}

// Families returns the families that have a schema file, in sorted order.
func (r *Registry) Families() []string {
	ret := make([]string, 0, len(r.files))
	for family := range r.files {
		ret = append(ret, family)
	}
	sort.Strings(ret)
	return ret
}

// Schema returns the compiled schema for an operation.
func (r *Registry) Schema(operation string) (*jsonschema.Schema, error) {
	family, ok := r.operations[operation]
	if !ok {
		return nil, &SchemaNotFoundError{Operation: operation}
	}
	if s, ok := r.compiled.Load(family); ok {
		return s.(*jsonschema.Schema), nil
	}
	file, ok := r.files[family]
	if !ok {
		return nil, &SchemaNotFoundError{Operation: operation, Family: family}
	}

	s, err := r.compile(family, file)
	if err != nil {
		return nil, err
	}
	// Concurrent callers may both get here; whichever schema is stored first is the one used.
	actual, _ := r.compiled.LoadOrStore(family, s)
	return actual.(*jsonschema.Schema), nil
}

func (r *Registry) compile(family, file string) (*jsonschema.Schema, error) {
	data, err := afero.ReadFile(r.fs, file)
	if err != nil {
		return nil, fmt.Errorf("cannot read schema file %q: %w", file, err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaParseError{Family: family, File: file, Err: err}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	url := "mem://schemas/" + path.Base(file)
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, &SchemaParseError{Family: family, File: file, Err: err}
	}
	s, err := compiler.Compile(url)
	if err != nil {
		return nil, &SchemaParseError{Family: family, File: file, Err: err}
	}
	return s, nil
}

func familyOf(fileName string) string {
	if i := strings.Index(fileName, "."); i >= 0 {
		return fileName[:i]
	}
	return fileName
}
