package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliveryinfra "github.com/farmlane/delivery-infra"
)

func testTemplate() *deliveryinfra.Template {
	return &deliveryinfra.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]deliveryinfra.ResourceDef{
			"AccessLogs": {Type: "AWS::Logs::LogGroup"},
			"DeliveryApi": {
				Type: "AWS::Serverless::Api",
				Properties: map[string]any{
					"AccessLogSetting": map[string]any{
						"DestinationArn": map[string]any{
							"Fn::GetAtt": []any{"AccessLogs", "Arn"},
						},
					},
				},
			},
			"ApiAccountLogBinding": {
				Type:      "AWS::ApiGateway::Account",
				DependsOn: []string{"DeliveryApi"},
			},
		},
	}
}

func TestGenerateDOT(t *testing.T) {
	g := &Generator{}
	out, err := g.GenerateString(testTemplate())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "digraph"))
	assert.Contains(t, out, "AWS::Serverless::Api")
	// GetAtt edges are colored, DependsOn edges are not.
	assert.Contains(t, out, `color="blue"`)
}

func TestGenerateMermaid(t *testing.T) {
	g := &Generator{Format: FormatMermaid}
	out, err := g.GenerateString(testTemplate())
	require.NoError(t, err)

	assert.Contains(t, out, "graph TD")
}

func TestGenerateClustered(t *testing.T) {
	tmpl := testTemplate()
	tmpl.Resources["CreateSlots"] = deliveryinfra.ResourceDef{Type: "AWS::Lambda::Function"}
	tmpl.Resources["GetSlots"] = deliveryinfra.ResourceDef{Type: "AWS::Lambda::Function"}

	g := &Generator{ClusterByService: true}
	out, err := g.GenerateString(tmpl)
	require.NoError(t, err)

	// Cluster ids are sequential; the service lands in the label.
	assert.Contains(t, out, "subgraph cluster_")
	assert.Contains(t, out, `label="Lambda"`)
	assert.Contains(t, out, "CreateSlots")
	assert.Contains(t, out, "GetSlots")
}

func TestExtractService(t *testing.T) {
	assert.Equal(t, "Lambda", extractService("AWS::Lambda::Function"))
	assert.Equal(t, "Custom", extractService("Custom::PopulateDataProvider"))
	assert.Equal(t, "Other", extractService(""))
}
