// Package gateway provisions the HTTP entry point: the serverless API with
// tracing, access logging and CORS, the execution role its integrations
// assume, and the account-level logging binding.
package gateway

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/farmlane/delivery-infra/intrinsics"
	"github.com/farmlane/delivery-infra/resources/apigateway"
	"github.com/farmlane/delivery-infra/resources/iam"
	"github.com/farmlane/delivery-infra/resources/logs"
	"github.com/farmlane/delivery-infra/resources/serverless"
)

// PushToCloudWatchPolicy lets API Gateway write execution logs.
const PushToCloudWatchPolicy = "arn:aws:iam::aws:policy/service-role/AmazonAPIGatewayPushToCloudWatchLogs"

// AccessLogRetentionDays keeps two months of access logs.
const AccessLogRetentionDays = 60

// accessLogFormat is the structured access log line. The profile and
// username claims come from the authorizer so log lines correlate with
// end users, not just IPs.
const accessLogFormat = `{"status":"$context.status",` +
	`"profile":"$context.authorizer.claims.profile",` +
	`"ip":"$context.identity.sourceIp",` +
	`"requestId":"$context.requestId",` +
	`"responseLength":"$context.responseLength",` +
	`"httpMethod":"$context.httpMethod",` +
	`"protocol":"$context.protocol",` +
	`"resourcePath":"$context.resourcePath",` +
	`"requestTime":"$context.requestTime",` +
	`"username":"$context.authorizer.claims['cognito:username']"}`

// Provisioner builds the gateway resources for one account and region.
type Provisioner struct {
	Region    string
	Account   string
	StageName string
}

// InvocationTarget returns the API Gateway invocation ARN for a function.
func (p *Provisioner) InvocationTarget(functionArn string) string {
	return fmt.Sprintf("arn:aws:apigateway:%s:lambda:path/2015-03-31/functions/%s/invocations",
		p.Region, functionArn)
}

// RoleArn returns the ARN the named gateway role will have once created.
func (p *Provisioner) RoleArn(roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", p.Account, roleName)
}

// ExecutionRole returns the role the gateway assumes to invoke the
// integration functions. The invoke grant lists exactly the routed
// functions.
func (p *Provisioner) ExecutionRole(roleName string, functionArns []string) (iam.Role, error) {
	if len(functionArns) == 0 {
		return iam.Role{}, errors.New("execution role requires at least one function")
	}

	return iam.Role{
		RoleName:                 roleName,
		Description:              "Role assumed by the delivery API gateway to invoke its functions",
		AssumeRolePolicyDocument: intrinsics.AssumedBy("apigateway.amazonaws.com"),
		ManagedPolicyArns:        []string{PushToCloudWatchPolicy},
		Policies: []iam.Role_Policy{
			{
				PolicyName: "InvokeDeliveryFunctions",
				PolicyDocument: intrinsics.NewPolicyDocument(
					intrinsics.Allow([]string{"lambda:InvokeFunction"}, functionArns),
				),
			},
		},
	}, nil
}

// AccessLogGroup returns the destination for gateway access logs.
func (p *Provisioner) AccessLogGroup() logs.LogGroup {
	return logs.LogGroup{RetentionInDays: AccessLogRetentionDays}
}

// Api returns the gateway with its rendered definition embedded. CORS is
// wide open; the browser-facing restriction lives in the functions'
// CORS_ALLOW_ORIGIN_HEADER response header.
func (p *Provisioner) Api(definition map[string]any, accessLogArn any) serverless.Api {
	return serverless.Api{
		StageName:      p.StageName,
		DefinitionBody: definition,
		TracingEnabled: true,
		AccessLogSetting: &serverless.Api_AccessLogSetting{
			DestinationArn: accessLogArn,
			Format:         accessLogFormat,
		},
		Cors: &serverless.Api_CorsConfiguration{
			AllowOrigin:  "'*'",
			AllowHeaders: "'*'",
			AllowMethods: "'*'",
		},
	}
}

// URL returns the stage URL of the API, resolved at deploy time.
func (p *Provisioner) URL(apiLogicalName string) intrinsics.Sub {
	return intrinsics.Sub{
		String: fmt.Sprintf("https://${%s}.execute-api.%s.amazonaws.com/%s",
			apiLogicalName, p.Region, p.StageName),
	}
}

// LoggingRole is the account-level role API Gateway uses to push logs to
// CloudWatch. One per account, bound through AccountBinding.
func (p *Provisioner) LoggingRole(roleName string) iam.Role {
	return iam.Role{
		RoleName:                 roleName,
		Description:              "Account-level role for API Gateway CloudWatch logging",
		AssumeRolePolicyDocument: intrinsics.AssumedBy("apigateway.amazonaws.com"),
		ManagedPolicyArns:        []string{PushToCloudWatchPolicy},
	}
}

// AccountBinding points the API Gateway account settings at the logging
// role. The caller orders it after the API so the binding never races
// stage creation.
func (p *Provisioner) AccountBinding(roleArn any) apigateway.Account {
	return apigateway.Account{CloudWatchRoleArn: roleArn}
}
