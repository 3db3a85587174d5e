package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestYAMLParser(t *testing.T) {
	ctx := setupTestLogger(t)
	p := &YAMLParser{}

	t.Run("can_parse", func(t *testing.T) {
		assert.True(t, p.CanParse("batch.yaml"))
		assert.True(t, p.CanParse("batch.yml"))
		assert.False(t, p.CanParse("batch.hcl"))
	})

	t.Run("parses_full_manifest", func(t *testing.T) {
		data := []byte(`
target: IBM-1047
parallel: true
workers: 4
conversions:
  - inputs: ["data/*.txt"]
    output_dir: out
    source: ISO8859-1
  - inputs: ["logs/**/*.log"]
    output_dir: converted
    target: ISO8859-1
    suffix: .ascii
`)
		m, err := p.Parse(ctx, data)
		require.NoError(t, err, "parsing YAML manifest")
		require.NoError(t, m.Validate(), "validating")

		assert.Equal(t, "IBM-1047", m.Target)
		assert.True(t, m.Parallel)
		assert.Equal(t, 4, m.Workers)
		require.Len(t, m.Conversions, 2)
		assert.Equal(t, "ISO8859-1", m.Conversions[0].Source)
		assert.Equal(t, "IBM-1047", m.Conversions[0].Target, "manifest target is the fallback")
		assert.Equal(t, "ISO8859-1", m.Conversions[1].Target, "per-conversion target wins")
		assert.Equal(t, ".ascii", m.Conversions[1].Suffix)
	})

	t.Run("unknown_fields_rejected", func(t *testing.T) {
		_, err := p.Parse(ctx, []byte("unknown_key: true\nconversions: []\n"))
		require.Error(t, err, "KnownFields must reject typos")
	})
}

func TestHCLParser(t *testing.T) {
	ctx := setupTestLogger(t)
	p := &HCLParser{}

	t.Run("can_parse", func(t *testing.T) {
		assert.True(t, p.CanParse("batch.hcl"))
		assert.False(t, p.CanParse("batch.yaml"))
	})

	t.Run("parses_full_manifest", func(t *testing.T) {
		data := []byte(`
target   = "IBM-1047"
parallel = true

conversion {
  inputs     = ["data/*.txt"]
  output_dir = "out"
  source     = "ISO8859-1"
}
`)
		m, err := p.Parse(ctx, data)
		require.NoError(t, err, "parsing HCL manifest")
		require.NoError(t, m.Validate(), "validating")

		assert.Equal(t, "IBM-1047", m.Target)
		assert.True(t, m.Parallel)
		require.Len(t, m.Conversions, 1)
		assert.Equal(t, []string{"data/*.txt"}, m.Conversions[0].Inputs)
	})

	t.Run("malformed_hcl_errors", func(t *testing.T) {
		_, err := p.Parse(ctx, []byte("conversion {"))
		require.Error(t, err, "unterminated block")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Manifest {
		return &Manifest{
			Target: "IBM-1047",
			Conversions: []Conversion{
				{Inputs: []string{"in.txt"}, OutputDir: "out"},
			},
		}
	}

	t.Run("valid_manifest", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("no_conversions", func(t *testing.T) {
		m := valid()
		m.Conversions = nil
		require.Error(t, m.Validate())
	})

	t.Run("missing_inputs", func(t *testing.T) {
		m := valid()
		m.Conversions[0].Inputs = nil
		require.Error(t, m.Validate())
	})

	t.Run("missing_output_dir", func(t *testing.T) {
		m := valid()
		m.Conversions[0].OutputDir = ""
		require.Error(t, m.Validate())
	})

	t.Run("no_target_anywhere", func(t *testing.T) {
		m := valid()
		m.Target = ""
		require.Error(t, m.Validate())
	})

	t.Run("unknown_encodings_rejected", func(t *testing.T) {
		m := valid()
		m.Conversions[0].Source = "utf-8"
		err := m.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown encoding")
	})
}

func TestLoad(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("loads_yaml_from_disk", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "batch.yaml")
		data := "target: ebcdic\nconversions:\n  - inputs: [\"*.txt\"]\n    output_dir: out\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		m, err := Load(ctx, path)
		require.NoError(t, err, "loading manifest")
		assert.Equal(t, "ebcdic", m.Target)
	})

	t.Run("missing_file_errors", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("unsupported_extension_errors", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "batch.toml")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := Load(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no parser found")
	})
}

func TestExpand(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("globs_expand_to_requests", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.txt", "b.txt", "ignore.bin"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}

		m := &Manifest{
			Target: "IBM-1047",
			Conversions: []Conversion{
				{
					Inputs:    []string{filepath.Join(dir, "*.txt")},
					OutputDir: filepath.Join(dir, "out"),
					Source:    "ISO8859-1",
					Suffix:    ".ebcdic",
				},
			},
		}
		require.NoError(t, m.Validate())

		reqs, err := Expand(ctx, m)
		require.NoError(t, err, "expanding manifest")
		require.Len(t, reqs, 2, "two .txt files match")

		assert.Equal(t, filepath.Join(dir, "a.txt"), reqs[0].Input.Path)
		assert.Equal(t, filepath.Join(dir, "out", "a.txt.ebcdic"), reqs[0].Output.Path)
		assert.Equal(t, "ISO8859-1", reqs[0].SourceOverride)
		assert.Equal(t, "IBM-1047", reqs[0].Target)
	})

	t.Run("empty_glob_errors", func(t *testing.T) {
		m := &Manifest{
			Target: "IBM-1047",
			Conversions: []Conversion{
				{Inputs: []string{filepath.Join(t.TempDir(), "*.nothing")}, OutputDir: "out"},
			},
		}
		require.NoError(t, m.Validate())

		_, err := Expand(ctx, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "matched nothing")
	})
}
