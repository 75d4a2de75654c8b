package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workflowWithQuotedVersion = `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: pnpm/action-setup@v2.2.4
        with:
          version: "7"
      - uses: actions/setup-node@v4
        with:
          node-version: 18.x
`

const workflowWithUnquotedVersion = `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: pnpm/action-setup@v2.2.4
        with:
          version: 9
      - uses: actions/setup-node@v4
        with:
          node-version: 18.x
`

func TestSetPnpmActionVersion(t *testing.T) {
	result, changed := SetPnpmActionVersion(workflowWithQuotedVersion, "9")

	require.True(t, changed)
	assert.Equal(t, workflowWithUnquotedVersion, result)
}

func TestSetPnpmActionVersionIsIdempotent(t *testing.T) {
	first, changed := SetPnpmActionVersion(workflowWithQuotedVersion, "9")
	require.True(t, changed)

	second, changed := SetPnpmActionVersion(first, "9")
	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestSetPnpmActionVersionWithoutStanzaIsNoop(t *testing.T) {
	const content = `jobs:
  build:
    steps:
      - uses: actions/setup-node@v4
        with:
          node-version: "18"
`

	result, changed := SetPnpmActionVersion(content, "9")
	assert.False(t, changed)
	assert.Equal(t, content, result)
}
