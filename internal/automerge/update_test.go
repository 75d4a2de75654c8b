package automerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUpdateLibrary(t *testing.T) {
	update, err := ResolveUpdate("v11", "@org/lib")
	require.NoError(t, err)

	assert.Equal(t, UpdateKindLibrary, update.Kind)
	assert.Equal(t, "fix(deps): update dependency @org/lib to v11", update.TitlePrefix)
	assert.Equal(t, "renovate.yml", update.WorkflowFileName)
	assert.False(t, update.CheckMergedAge)
}

func TestResolveUpdateNonMajor(t *testing.T) {
	update, err := ResolveUpdate(SelectorNonMajor, "")
	require.NoError(t, err)

	assert.Equal(t, UpdateKindNonMajor, update.Kind)
	assert.Equal(t, "chore(deps): update all non-major dependencies", update.TitlePrefix)
	assert.True(t, update.CheckMergedAge)
}

func TestResolveUpdatePnpm(t *testing.T) {
	update, err := ResolveUpdate(SelectorPnpm, "")
	require.NoError(t, err)

	assert.Equal(t, UpdateKindPnpm, update.Kind)
	assert.Equal(t, "chore(deps): update pnpm to v9", update.TitlePrefix)
	assert.False(t, update.CheckMergedAge)
}

func TestResolveUpdateEmptySelectorFails(t *testing.T) {
	_, err := ResolveUpdate("", "")
	require.Error(t, err)
}

func TestResolveUpdateVersionWithoutLibraryFails(t *testing.T) {
	_, err := ResolveUpdate("v11", "")
	require.Error(t, err)
}
