package dbinit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliveryinfra "github.com/farmlane/delivery-infra"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dbinit.sql")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewJobDerivesChangeKeyFromContent(t *testing.T) {
	job, err := NewJob(writeScript(t, "CREATE TABLE slot (id int);"))
	require.NoError(t, err)

	same, err := NewJob(writeScript(t, "CREATE TABLE slot (id int);"))
	require.NoError(t, err)
	assert.Equal(t, job.ChangeKey(), same.ChangeKey())

	changed, err := NewJob(writeScript(t, "CREATE TABLE slot (id bigint);"))
	require.NoError(t, err)
	assert.NotEqual(t, job.ChangeKey(), changed.ChangeKey())
}

func TestNewJobMissingScriptIsFatal(t *testing.T) {
	_, err := NewJob(filepath.Join(t.TempDir(), "absent.sql"))
	require.Error(t, err)
}

func TestTransition(t *testing.T) {
	assert.Equal(t, StateApplied, Transition(StateUnset, "", "k1"))
	assert.Equal(t, StateApplied, Transition(StateApplied, "k1", "k1"))
	assert.Equal(t, StateReapplied, Transition(StateApplied, "k1", "k2"))
	assert.Equal(t, StateReapplied, Transition(StateReapplied, "k2", "k2"))
}

func TestHookCarriesScriptAndServiceToken(t *testing.T) {
	job, err := NewJob(writeScript(t, "CREATE TABLE farm (id int);"))
	require.NoError(t, err)

	token := deliveryinfra.AttrRef{Resource: "PopulateFarmDb", Attribute: "Arn"}
	hook := job.Hook(token)

	assert.Equal(t, HookResourceType, hook.ResourceType())
	assert.Equal(t, token, hook.ServiceToken)
	assert.Equal(t, "CREATE TABLE farm (id int);", hook.SqlScript)
	assert.Equal(t, job.ChangeKey(), hook.ChangeKey)
}
