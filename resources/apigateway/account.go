// Package apigateway provides the API Gateway resource types used by the
// delivery stack.
package apigateway

// Account is an AWS::ApiGateway::Account resource. It binds the
// account/region-scoped CloudWatch logging role to the gateway service and
// is reusable across stacks in the same account and region.
type Account struct {
	CloudWatchRoleArn any `json:"CloudWatchRoleArn,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Account) ResourceType() string { return "AWS::ApiGateway::Account" }
