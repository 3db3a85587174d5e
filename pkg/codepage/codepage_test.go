package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestResolve(t *testing.T) {
	t.Run("canonical_names", func(t *testing.T) {
		iso, err := Resolve("ISO8859-1")
		require.NoError(t, err, "resolving ISO8859-1")
		assert.Equal(t, CCSIDISO88591, iso.CCSID)

		ebcdic, err := Resolve("IBM-1047")
		require.NoError(t, err, "resolving IBM-1047")
		assert.Equal(t, CCSIDIBM1047, ebcdic.CCSID)
	})

	t.Run("aliases_resolve_to_same_entry", func(t *testing.T) {
		canonical, err := Resolve("IBM-1047")
		require.NoError(t, err, "resolving canonical name")

		for _, alias := range []string{"ibm1047", "IBM1047", "cp1047", "CP-1047", "ebcdic", "EBCDIC", "1047"} {
			e, err := Resolve(alias)
			require.NoError(t, err, "resolving alias %q", alias)
			assert.True(t, e.Same(canonical), "alias %q should be the same encoding", alias)
			assert.Equal(t, "IBM-1047", e.Name, "alias %q should keep the canonical name", alias)
		}
	})

	t.Run("latin1_spellings", func(t *testing.T) {
		canonical, err := Resolve("ISO8859-1")
		require.NoError(t, err, "resolving canonical name")

		for _, alias := range []string{"iso-8859-1", "iso_8859_1", "latin1", "Latin-1", "ascii", "819"} {
			e, err := Resolve(alias)
			require.NoError(t, err, "resolving alias %q", alias)
			assert.True(t, e.Same(canonical), "alias %q should be the same encoding", alias)
		}
	})

	t.Run("unknown_name_errors", func(t *testing.T) {
		_, err := Resolve("UTF-8")
		require.Error(t, err, "UTF-8 is not registered")
		assert.Contains(t, err.Error(), "unknown encoding")
	})
}

func TestByCCSID(t *testing.T) {
	t.Run("known_ccsids", func(t *testing.T) {
		e, ok := ByCCSID(819)
		require.True(t, ok, "CCSID 819 should be registered")
		assert.Equal(t, "ISO8859-1", e.Name)

		e, ok = ByCCSID(1047)
		require.True(t, ok, "CCSID 1047 should be registered")
		assert.Equal(t, "IBM-1047", e.Name)
	})

	t.Run("unknown_ccsid", func(t *testing.T) {
		_, ok := ByCCSID(37)
		assert.False(t, ok, "CCSID 37 is not registered")
	})

	t.Run("untagged_is_not_an_encoding", func(t *testing.T) {
		_, ok := ByCCSID(CCSIDUntagged)
		assert.False(t, ok, "CCSID 0 must never resolve to an encoding")
	})
}

func TestSame(t *testing.T) {
	t.Run("different_encodings_differ", func(t *testing.T) {
		iso, err := Resolve("ISO8859-1")
		require.NoError(t, err)
		ebcdic, err := Resolve("ebcdic")
		require.NoError(t, err)
		assert.False(t, iso.Same(ebcdic))
	})

	t.Run("nil_handling", func(t *testing.T) {
		iso, err := Resolve("latin1")
		require.NoError(t, err)
		var none *Encoding
		assert.False(t, iso.Same(none))
		assert.False(t, none.Same(iso))
		assert.True(t, none.Same(nil))
	})
}

func TestRegister(t *testing.T) {
	t.Run("duplicate_name_rejected", func(t *testing.T) {
		err := Register(New("ISO8859-1", 4909, charmap.ISO8859_1))
		require.Error(t, err, "duplicate canonical name")
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("duplicate_alias_rejected", func(t *testing.T) {
		err := Register(New("EBCDIC-open", 4911, charmap.CodePage1047, "ebcdic"))
		require.Error(t, err, "duplicate alias")
	})

	t.Run("duplicate_ccsid_rejected", func(t *testing.T) {
		err := Register(New("latin-one-again", 819, charmap.ISO8859_1))
		require.Error(t, err, "duplicate CCSID")
	})
}

func TestNames(t *testing.T) {
	names := Names()
	require.GreaterOrEqual(t, len(names), 2, "two encodings are pre-registered")
	assert.Equal(t, "ISO8859-1", names[0], "registration order is preserved")
	assert.Equal(t, "IBM-1047", names[1])
}
