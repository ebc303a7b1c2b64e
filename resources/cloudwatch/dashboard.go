// Package cloudwatch provides the CloudWatch resource types used by the
// delivery stack.
package cloudwatch

// Dashboard is an AWS::CloudWatch::Dashboard resource. DashboardBody is
// the dashboard definition as a JSON string.
type Dashboard struct {
	DashboardName string `json:"DashboardName,omitempty"`
	DashboardBody string `json:"DashboardBody,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Dashboard) ResourceType() string { return "AWS::CloudWatch::Dashboard" }

// Alarm is an AWS::CloudWatch::Alarm resource.
type Alarm struct {
	AlarmName          string            `json:"AlarmName,omitempty"`
	AlarmDescription   string            `json:"AlarmDescription,omitempty"`
	Namespace          string            `json:"Namespace,omitempty"`
	MetricName         string            `json:"MetricName,omitempty"`
	Dimensions         []Alarm_Dimension `json:"Dimensions,omitempty"`
	Statistic          string            `json:"Statistic,omitempty"`
	Period             int               `json:"Period,omitempty"`
	EvaluationPeriods  int               `json:"EvaluationPeriods,omitempty"`
	Threshold          float64           `json:"Threshold,omitempty"`
	ComparisonOperator string            `json:"ComparisonOperator,omitempty"`
	TreatMissingData   string            `json:"TreatMissingData,omitempty"`
	AlarmActions       []any             `json:"AlarmActions,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Alarm) ResourceType() string { return "AWS::CloudWatch::Alarm" }

// Alarm_Dimension is a metric dimension on an alarm.
type Alarm_Dimension struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}
