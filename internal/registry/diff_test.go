package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name, customName string) Entry {
	return Entry{
		Name:       name,
		CustomName: customName,
		URL:        GitHubURLPrefix + name,
	}
}

func TestDiff_AdditiveChange(t *testing.T) {
	t.Parallel()

	old := Registry{entry("Acme/Mod", "Acme Mod")}
	proposed := Registry{
		entry("Acme/Mod", "Acme Mod"),
		entry("Orinoco/Maps", "Orinoco Map Pack"),
	}

	cs := Diff(old, proposed)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, "Orinoco/Maps", cs.Added[0].Name)
	assert.Empty(t, cs.Removed)
	assert.Empty(t, cs.Modified)
	assert.True(t, cs.Additive())
	assert.Empty(t, cs.Warnings())
}

func TestDiff_ModifiedEntry(t *testing.T) {
	t.Parallel()

	old := Registry{entry("Acme/Mod", "Acme Mod")}
	proposed := Registry{entry("Acme/Mod", "Acme Mod (fixed)")}

	cs := Diff(old, proposed)

	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Removed)
	require.Len(t, cs.Modified, 1)
	assert.Equal(t, "Acme Mod", cs.Modified[0].Old.CustomName)
	assert.Equal(t, "Acme Mod (fixed)", cs.Modified[0].New.CustomName)
	assert.Equal(t, 0, cs.Modified[0].NewIndex)
	assert.False(t, cs.Additive())

	warnings := cs.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, KindExistingEntryModified, warnings[0].Kind)
	assert.Equal(t, SeverityWarning, warnings[0].Severity)
	assert.Equal(t, 0, warnings[0].Index)
}

func TestDiff_RemovedEntry(t *testing.T) {
	t.Parallel()

	old := Registry{
		entry("Acme/Mod", "Acme Mod"),
		entry("Orinoco/Maps", "Orinoco Map Pack"),
	}
	proposed := Registry{entry("Acme/Mod", "Acme Mod")}

	cs := Diff(old, proposed)

	assert.Empty(t, cs.Added)
	require.Len(t, cs.Removed, 1)
	assert.Equal(t, "Orinoco/Maps", cs.Removed[0].Name)
	assert.False(t, cs.Additive())

	warnings := cs.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, KindExistingEntryModified, warnings[0].Kind)
	assert.Equal(t, DocumentIndex, warnings[0].Index)
	assert.Contains(t, warnings[0].Message, "removed")
}

func TestDiff_CaseInsensitiveKeying(t *testing.T) {
	t.Parallel()

	old := Registry{entry("Acme/Mod", "Acme Mod")}
	proposed := Registry{entry("acme/mod", "Acme Mod")}

	cs := Diff(old, proposed)

	// Same key, but the name field itself changed: modified, not added+removed.
	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Removed)
	require.Len(t, cs.Modified, 1)
}

func TestDiff_IdenticalSnapshots(t *testing.T) {
	t.Parallel()

	reg := Registry{
		entry("Acme/Mod", "Acme Mod"),
		entry("Orinoco/Maps", "Orinoco Map Pack"),
	}

	cs := Diff(reg, reg)

	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Removed)
	assert.Empty(t, cs.Modified)
	assert.True(t, cs.Additive())
}

func TestDiff_EmptyOldRegistry(t *testing.T) {
	t.Parallel()

	cs := Diff(nil, Registry{entry("Acme/Mod", "Acme Mod")})

	require.Len(t, cs.Added, 1)
	assert.True(t, cs.Additive())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()

		doc := `[{"name":"B/b","custom_name":"B","url":"https://github.com/B/b"},` +
			`{"name":"A/a","custom_name":"A","url":"https://github.com/A/a"}]`

		reg, err := Parse([]byte(doc))
		require.NoError(t, err)
		require.Len(t, reg, 2)
		assert.Equal(t, "B/b", reg[0].Name)
		assert.Equal(t, "A/a", reg[1].Name)
	})

	t.Run("fails on malformed input", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte(`[{`))
		require.Error(t, err)
	})
}

func TestEntry_OwnerRepo(t *testing.T) {
	t.Parallel()

	e := Entry{Name: "Acme/Mod"}
	assert.Equal(t, "Acme", e.Owner())
	assert.Equal(t, "Mod", e.Repo())
	assert.Equal(t, "acme/mod", e.Key())

	malformed := Entry{Name: "AcmeMod"}
	assert.Empty(t, malformed.Owner())
	assert.Empty(t, malformed.Repo())
}
