// Package sns provides the SNS resource types used by the delivery stack.
package sns

// Topic is an AWS::SNS::Topic resource.
type Topic struct {
	TopicName   string `json:"TopicName,omitempty"`
	DisplayName string `json:"DisplayName,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Topic) ResourceType() string { return "AWS::SNS::Topic" }

// Subscription is an AWS::SNS::Subscription resource.
type Subscription struct {
	TopicArn any    `json:"TopicArn,omitempty"`
	Protocol string `json:"Protocol,omitempty"`
	Endpoint string `json:"Endpoint,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Subscription) ResourceType() string { return "AWS::SNS::Subscription" }
