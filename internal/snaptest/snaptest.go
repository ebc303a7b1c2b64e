// Package snaptest compares values against JSON snapshots stored under
// the package's testdata directory. Missing snapshots are written on the
// first run and compared thereafter.
package snaptest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Match asserts that v matches the named snapshot. Snapshots are stored
// as canonical indented JSON so diffs stay readable. Delete the snapshot
// file to accept a new baseline.
func Match(t *testing.T, name string, v any) {
	t.Helper()

	actual := canonical(t, v)
	path := filepath.Join("testdata", "snapshots", name+".json")

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, actual, 0o644))
		t.Logf("wrote snapshot %s", path)
		return
	}
	require.NoError(t, err)

	assert.JSONEq(t, string(expected), string(actual), "snapshot %s", path)
}

// canonical round-trips v through JSON so map ordering and custom
// marshalers cannot make equal values compare unequal.
func canonical(t *testing.T, v any) []byte {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var generic any
	require.NoError(t, json.Unmarshal(raw, &generic))

	out, err := json.MarshalIndent(generic, "", "  ")
	require.NoError(t, err)
	return append(out, '\n')
}
