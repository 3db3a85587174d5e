// Copyright 2025 the tagconv authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package manifest loads batch conversion manifests from YAML or HCL and
// expands their input globs into conversion requests.
package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zosopen/tagconv/pkg/codepage"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for manifest parsers
type Parser interface {
	// 📝 Parse parses the manifest from bytes
	Parse(ctx context.Context, data []byte) (*Manifest, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Conversion is one group of inputs converted to one output directory
type Conversion struct {
	Inputs    []string `json:"inputs" yaml:"inputs" hcl:"inputs"`                                   // Input paths or glob patterns
	OutputDir string   `json:"output_dir" yaml:"output_dir" hcl:"output_dir"`                       // Directory receiving converted files
	Source    string   `json:"source,omitempty" yaml:"source,omitempty" hcl:"source,optional"`      // Explicit source encoding (optional)
	Target    string   `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional"`      // Target encoding; falls back to the manifest target
	Suffix    string   `json:"suffix,omitempty" yaml:"suffix,omitempty" hcl:"suffix,optional"`      // Suffix appended to output names (optional)
}

// 📚 Manifest represents the complete batch configuration
type Manifest struct {
	Target      string       `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional"`          // Default target encoding
	Parallel    bool         `json:"parallel,omitempty" yaml:"parallel,omitempty" hcl:"parallel,optional"`    // Run items concurrently
	Workers     int          `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`       // Worker cap when parallel
	Conversions []Conversion `json:"conversions" yaml:"conversions" hcl:"conversion,block"`                   // Conversion groups
}

// 🎯 Load loads a manifest from a file
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading manifest")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading manifest file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	m, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Errorf("validating manifest: %w", err)
	}

	return m, nil
}

// 🔍 Validate checks if the manifest is valid
func (m *Manifest) Validate() error {
	if len(m.Conversions) == 0 {
		return errors.Errorf("at least one conversion is required")
	}
	if m.Target != "" {
		if _, err := codepage.Resolve(m.Target); err != nil {
			return errors.Errorf("validating manifest target: %w", err)
		}
	}

	for i := range m.Conversions {
		c := &m.Conversions[i]
		if len(c.Inputs) == 0 {
			return errors.Errorf("conversion %d: inputs are required", i)
		}
		if c.OutputDir == "" {
			return errors.Errorf("conversion %d: output_dir is required", i)
		}
		c.OutputDir = filepath.Clean(c.OutputDir)

		if c.Target == "" {
			c.Target = m.Target
		}
		if c.Target == "" {
			return errors.Errorf("conversion %d: no target encoding (set it on the conversion or the manifest)", i)
		}
		if _, err := codepage.Resolve(c.Target); err != nil {
			return errors.Errorf("conversion %d: validating target: %w", i, err)
		}
		if c.Source != "" {
			if _, err := codepage.Resolve(c.Source); err != nil {
				return errors.Errorf("conversion %d: validating source: %w", i, err)
			}
		}
	}

	return nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &m, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Manifest, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "manifest.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var m Manifest
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &m)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &m, nil
}
