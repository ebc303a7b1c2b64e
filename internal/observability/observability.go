// Package observability wires the alerting topic and the function
// dashboard.
package observability

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/farmlane/delivery-infra/resources/cloudwatch"
	"github.com/farmlane/delivery-infra/resources/sns"
)

const (
	dashboardWidgetWidth  = 8
	dashboardWidgetHeight = 6
	widgetsPerRow         = 3
)

// Wiring builds the observability resources for one region.
type Wiring struct {
	Region string
	// AlertEmail subscribes an operator inbox to the alarm topic.
	// Optional: empty means no subscription.
	AlertEmail string
}

// AlarmTopic is the notification fan-out for function error alarms.
func (w *Wiring) AlarmTopic() sns.Topic {
	return sns.Topic{
		TopicName:   "ErrorAlarmTopic",
		DisplayName: "Delivery API error alarms",
	}
}

// EmailSubscription subscribes the configured alert email to the topic.
// Returns ok=false when no email is configured.
func (w *Wiring) EmailSubscription(topicArn any) (sns.Subscription, bool) {
	if w.AlertEmail == "" {
		return sns.Subscription{}, false
	}
	return sns.Subscription{
		TopicArn: topicArn,
		Protocol: "email",
		Endpoint: w.AlertEmail,
	}, true
}

// ErrorAlarm alarms when a function reports errors, notifying the topic.
func (w *Wiring) ErrorAlarm(functionName string, topicArn any) cloudwatch.Alarm {
	return cloudwatch.Alarm{
		AlarmName:          functionName + "-errors",
		AlarmDescription:   "Errors reported by " + functionName,
		Namespace:          "AWS/Lambda",
		MetricName:         "Errors",
		Dimensions:         []cloudwatch.Alarm_Dimension{{Name: "FunctionName", Value: functionName}},
		Statistic:          "Sum",
		Period:             300,
		EvaluationPeriods:  1,
		Threshold:          1,
		ComparisonOperator: "GreaterThanOrEqualToThreshold",
		TreatMissingData:   "notBreaching",
		AlarmActions:       []any{topicArn},
	}
}

// Dashboard builds one metric widget per monitored function, charting
// invocations, errors and duration.
func (w *Wiring) Dashboard(functionNames []string) (cloudwatch.Dashboard, error) {
	if len(functionNames) == 0 {
		return cloudwatch.Dashboard{}, errors.New("dashboard requires at least one function")
	}

	widgets := lo.Map(functionNames, func(name string, i int) map[string]any {
		return map[string]any{
			"type":   "metric",
			"x":      (i % widgetsPerRow) * dashboardWidgetWidth,
			"y":      (i / widgetsPerRow) * dashboardWidgetHeight,
			"width":  dashboardWidgetWidth,
			"height": dashboardWidgetHeight,
			"properties": map[string]any{
				"title":  name,
				"region": w.Region,
				"stat":   "Sum",
				"period": 300,
				"metrics": []any{
					[]any{"AWS/Lambda", "Invocations", "FunctionName", name},
					[]any{".", "Errors", ".", "."},
					[]any{".", "Duration", ".", ".", map[string]any{"stat": "Average"}},
				},
			},
		}
	})

	body, err := json.Marshal(map[string]any{"widgets": widgets})
	if err != nil {
		return cloudwatch.Dashboard{}, errors.Wrap(err, "serializing dashboard body")
	}

	return cloudwatch.Dashboard{
		DashboardName: "FunctionDashboard",
		DashboardBody: string(body),
	}, nil
}
