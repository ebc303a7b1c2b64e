package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DELIVERY_REGION", "eu-west-1")
	t.Setenv("DELIVERY_ACCOUNT_ID", "123456789012")
	t.Setenv("DELIVERY_SUBNET_IDS", "subnet-1,subnet-2")
	t.Setenv("DELIVERY_DB_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, []string{"subnet-1", "subnet-2"}, cfg.SubnetIDs)
	assert.Equal(t, 5433, cfg.DBPort)

	// Defaults.
	assert.Equal(t, "DeliveryApi", cfg.StackName)
	assert.Equal(t, "Prod", cfg.StageName)
	assert.Equal(t, "com.ilmlf.delivery.api.handlers", cfg.HandlerNamespace)

	// Database region follows the stack region unless pinned.
	assert.Equal(t, "eu-west-1", cfg.DBRegion)
}

func TestLoadPinnedDBRegion(t *testing.T) {
	t.Setenv("DELIVERY_REGION", "eu-west-1")
	t.Setenv("DELIVERY_DB_REGION", "eu-central-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.DBRegion)
}

func TestValidateListsEveryMissingField(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)

	for _, field := range []string{"region", "account id", "db user", "subnet ids", "sql script path"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, testConfig(t).Validate())
}
