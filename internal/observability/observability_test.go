package observability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliveryinfra "github.com/farmlane/delivery-infra"
)

func TestEmailSubscriptionOnlyWhenConfigured(t *testing.T) {
	topicArn := deliveryinfra.AttrRef{Resource: "ErrorAlarmTopic", Attribute: "TopicArn"}

	w := &Wiring{Region: "us-east-1"}
	_, ok := w.EmailSubscription(topicArn)
	assert.False(t, ok)

	w.AlertEmail = "ops@example.com"
	sub, ok := w.EmailSubscription(topicArn)
	require.True(t, ok)
	assert.Equal(t, "email", sub.Protocol)
	assert.Equal(t, "ops@example.com", sub.Endpoint)
	assert.Equal(t, topicArn, sub.TopicArn)
}

func TestErrorAlarmWatchesFunctionErrors(t *testing.T) {
	topicArn := deliveryinfra.AttrRef{Resource: "ErrorAlarmTopic", Attribute: "TopicArn"}

	w := &Wiring{Region: "us-east-1"}
	alarm := w.ErrorAlarm("GetSlots", topicArn)

	assert.Equal(t, "GetSlots-errors", alarm.AlarmName)
	assert.Equal(t, "AWS/Lambda", alarm.Namespace)
	assert.Equal(t, "Errors", alarm.MetricName)
	require.Len(t, alarm.Dimensions, 1)
	assert.Equal(t, "GetSlots", alarm.Dimensions[0].Value)
	assert.Equal(t, []any{topicArn}, alarm.AlarmActions)
}

func TestDashboardChartsEachFunction(t *testing.T) {
	w := &Wiring{Region: "us-east-1"}

	dash, err := w.Dashboard([]string{"CreateSlots", "GetSlots", "BookDelivery", "PopulateFarmDb"})
	require.NoError(t, err)
	assert.Equal(t, "FunctionDashboard", dash.DashboardName)

	var body struct {
		Widgets []struct {
			X          int `json:"x"`
			Y          int `json:"y"`
			Properties struct {
				Title   string `json:"title"`
				Region  string `json:"region"`
				Metrics []any  `json:"metrics"`
			} `json:"properties"`
		} `json:"widgets"`
	}
	require.NoError(t, json.Unmarshal([]byte(dash.DashboardBody), &body))
	require.Len(t, body.Widgets, 4)

	assert.Equal(t, "CreateSlots", body.Widgets[0].Properties.Title)
	assert.Equal(t, "us-east-1", body.Widgets[0].Properties.Region)
	assert.Len(t, body.Widgets[0].Properties.Metrics, 3)

	// Fourth widget wraps to the second row.
	assert.Equal(t, 0, body.Widgets[3].X)
	assert.Equal(t, 6, body.Widgets[3].Y)
}

func TestDashboardRequiresFunctions(t *testing.T) {
	w := &Wiring{Region: "us-east-1"}
	_, err := w.Dashboard(nil)
	require.Error(t, err)
}

func TestDashboardBodyIsDeterministic(t *testing.T) {
	w := &Wiring{Region: "us-east-1"}

	first, err := w.Dashboard([]string{"CreateSlots", "GetSlots"})
	require.NoError(t, err)
	second, err := w.Dashboard([]string{"CreateSlots", "GetSlots"})
	require.NoError(t, err)

	assert.Equal(t, first.DashboardBody, second.DashboardBody)
}
