// Package roles builds the IAM execution roles for the delivery compute
// functions. Two database authentication modes are supported: IAM token
// auth against the RDS proxy, and password auth from Secrets Manager.
package roles

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/farmlane/delivery-infra/intrinsics"
	"github.com/farmlane/delivery-infra/resources/iam"
)

// Managed policies attached to the execution roles.
const (
	// VPCAccessPolicy lets a function attach ENIs inside the database VPC.
	VPCAccessPolicy = "arn:aws:iam::aws:policy/service-role/AWSLambdaVPCAccessExecutionRole"
)

// ErrMissingSecret indicates a password-auth role was requested without
// both secret references resolved.
var ErrMissingSecret = errors.New("secret reference not resolved")

// Factory builds execution roles scoped to one account and region.
type Factory struct {
	Region  string
	Account string
}

// TokenAuthRole returns the execution role for functions connecting
// through the RDS proxy with IAM auth tokens. The connect grant is scoped
// to the database user across all proxies in the account.
func (f *Factory) TokenAuthRole(roleName, dbUser string) (iam.Role, error) {
	if dbUser == "" {
		return iam.Role{}, errors.New("token auth role requires a database user")
	}

	connect := intrinsics.Allow(
		[]string{"rds-db:connect"},
		[]string{fmt.Sprintf("arn:aws:rds-db:%s:%s:dbuser:*/%s", f.Region, f.Account, dbUser)},
	)

	return iam.Role{
		RoleName:                 roleName,
		Description:              "Execution role for delivery functions using IAM database auth",
		AssumeRolePolicyDocument: intrinsics.AssumedBy("lambda.amazonaws.com"),
		ManagedPolicyArns:        []string{VPCAccessPolicy},
		Policies: []iam.Role_Policy{
			{
				PolicyName:     "RdsProxyConnect",
				PolicyDocument: intrinsics.NewPolicyDocument(connect),
			},
		},
	}, nil
}

// PasswordAuthRole returns the execution role for functions reading
// database credentials from Secrets Manager. The read grant covers
// exactly the admin and application user secrets, nothing broader.
func (f *Factory) PasswordAuthRole(roleName, adminSecretArn, userSecretArn string) (iam.Role, error) {
	if adminSecretArn == "" || userSecretArn == "" {
		return iam.Role{}, errors.Wrap(ErrMissingSecret, "password auth role")
	}

	read := intrinsics.Allow(
		[]string{"secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret"},
		[]string{adminSecretArn, userSecretArn},
	)

	return iam.Role{
		RoleName:                 roleName,
		Description:              "Execution role for delivery functions using password database auth",
		AssumeRolePolicyDocument: intrinsics.AssumedBy("lambda.amazonaws.com"),
		ManagedPolicyArns:        []string{VPCAccessPolicy},
		Policies: []iam.Role_Policy{
			{
				PolicyName:     "ReadDbSecrets",
				PolicyDocument: intrinsics.NewPolicyDocument(read),
			},
		},
	}, nil
}
