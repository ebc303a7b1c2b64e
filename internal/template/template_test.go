package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/resources/logs"
	"github.com/farmlane/delivery-infra/resources/serverless"
	"github.com/farmlane/delivery-infra/resources/sns"
)

func TestBuilderRejectsDuplicateNames(t *testing.T) {
	b := NewBuilder("")

	_, err := b.Add("Topic", sns.Topic{TopicName: "alerts"})
	require.NoError(t, err)

	_, err = b.Add("Topic", sns.Topic{TopicName: "alerts"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate logical name")
}

func TestBuildSetsTransformForServerlessResources(t *testing.T) {
	b := NewBuilder("delivery api")
	_, err := b.Add("Api", serverless.Api{StageName: "Prod"})
	require.NoError(t, err)

	tmpl, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "AWS::Serverless-2016-10-31", tmpl.Transform)
	assert.Equal(t, "2010-09-09", tmpl.AWSTemplateFormatVersion)
	assert.Equal(t, "delivery api", tmpl.Description)
}

func TestBuildOmitsTransformWithoutServerlessResources(t *testing.T) {
	b := NewBuilder("")
	_, err := b.Add("AccessLogs", logs.LogGroup{RetentionInDays: 60})
	require.NoError(t, err)

	tmpl, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, tmpl.Transform)
}

func TestOrderFollowsGetAttReferences(t *testing.T) {
	b := NewBuilder("")

	topic, err := b.Add("AlarmTopic", sns.Topic{TopicName: "alerts"})
	require.NoError(t, err)

	_, err = b.Add("AlarmSubscription", sns.Subscription{
		TopicArn: topic.Att("TopicArn"),
		Protocol: "email",
		Endpoint: "ops@example.com",
	})
	require.NoError(t, err)

	order, err := b.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"AlarmTopic", "AlarmSubscription"}, order)
}

func TestOrderFollowsExplicitDependsOn(t *testing.T) {
	b := NewBuilder("")

	api, err := b.Add("Api", serverless.Api{StageName: "Prod"})
	require.NoError(t, err)
	logsGroup, err := b.Add("AccessLogs", logs.LogGroup{RetentionInDays: 60})
	require.NoError(t, err)

	b.DependsOn(api, logsGroup)

	order, err := b.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"AccessLogs", "Api"}, order)

	tmpl, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"AccessLogs"}, tmpl.Resources["Api"].DependsOn)
}

func TestBuildDetectsCycles(t *testing.T) {
	b := NewBuilder("")

	a, err := b.Add("A", logs.LogGroup{LogGroupName: "a"})
	require.NoError(t, err)
	c, err := b.Add("B", logs.LogGroup{LogGroupName: "b"})
	require.NoError(t, err)

	b.DependsOn(a, c)
	b.DependsOn(c, a)

	_, err = b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestSetMetadata(t *testing.T) {
	b := NewBuilder("")

	h, err := b.Add("Fn", logs.LogGroup{LogGroupName: "fn"})
	require.NoError(t, err)
	b.SetMetadata(h, deliveryinfra.MetadataAssetPath, "./build/lambda.zip")

	tmpl, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "./build/lambda.zip", tmpl.Resources["Fn"].Metadata[deliveryinfra.MetadataAssetPath])
}

func TestCollectRefs(t *testing.T) {
	props := map[string]any{
		"AccessLogSetting": map[string]any{
			"DestinationArn": map[string]any{
				"Fn::GetAtt": []any{"AccessLogs", "Arn"},
			},
		},
		"StageName": "Prod",
	}
	assert.Equal(t, []string{"AccessLogs"}, CollectRefs(props))
}
