package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmlane/delivery-infra/intrinsics"
)

func testFactory() *Factory {
	return &Factory{Region: "us-east-1", Account: "123456789012"}
}

func TestTokenAuthRoleScopesConnectToDbUser(t *testing.T) {
	role, err := testFactory().TokenAuthRole("delivery-token-auth", "appuser")
	require.NoError(t, err)

	require.Len(t, role.Policies, 1)
	doc, ok := role.Policies[0].PolicyDocument.(intrinsics.PolicyDocument)
	require.True(t, ok)
	require.Len(t, doc.Statement, 1)

	assert.Equal(t, "rds-db:connect", doc.Statement[0].Action)
	assert.Equal(t, "arn:aws:rds-db:us-east-1:123456789012:dbuser:*/appuser", doc.Statement[0].Resource)
	assert.Equal(t, []string{VPCAccessPolicy}, role.ManagedPolicyArns)
}

func TestTokenAuthRoleRequiresDbUser(t *testing.T) {
	_, err := testFactory().TokenAuthRole("delivery-token-auth", "")
	require.Error(t, err)
}

func TestPasswordAuthRoleScopesReadToBothSecrets(t *testing.T) {
	adminArn := "arn:aws:secretsmanager:us-east-1:123456789012:secret:delivery/admin-AbCdEf"
	userArn := "arn:aws:secretsmanager:us-east-1:123456789012:secret:delivery/user-GhIjKl"

	role, err := testFactory().PasswordAuthRole("delivery-password-auth", adminArn, userArn)
	require.NoError(t, err)

	require.Len(t, role.Policies, 1)
	doc, ok := role.Policies[0].PolicyDocument.(intrinsics.PolicyDocument)
	require.True(t, ok)
	require.Len(t, doc.Statement, 1)

	assert.Equal(t,
		[]any{"secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret"},
		doc.Statement[0].Action)
	assert.Equal(t, []any{adminArn, userArn}, doc.Statement[0].Resource)
}

func TestPasswordAuthRoleRequiresBothSecrets(t *testing.T) {
	for _, tc := range []struct {
		name  string
		admin string
		user  string
	}{
		{"missing admin", "", "arn:aws:secretsmanager:us-east-1:123456789012:secret:u"},
		{"missing user", "arn:aws:secretsmanager:us-east-1:123456789012:secret:a", ""},
		{"missing both", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testFactory().PasswordAuthRole("delivery-password-auth", tc.admin, tc.user)
			require.ErrorIs(t, err, ErrMissingSecret)
		})
	}
}
