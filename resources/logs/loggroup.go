// Package logs provides the CloudWatch Logs resource types used by the
// delivery stack.
package logs

// LogGroup is an AWS::Logs::LogGroup resource.
type LogGroup struct {
	LogGroupName    any `json:"LogGroupName,omitempty"`
	RetentionInDays int `json:"RetentionInDays,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
