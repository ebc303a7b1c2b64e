package deliveryinfra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrRefMarshalJSON(t *testing.T) {
	ref := AttrRef{Resource: "AccessLogs", Attribute: "Arn"}

	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::GetAtt": ["AccessLogs", "Arn"]}`, string(data))
}

func TestAttrRefIsZero(t *testing.T) {
	assert.True(t, AttrRef{}.IsZero())
	assert.False(t, AttrRef{Resource: "X", Attribute: "Arn"}.IsZero())
}

func TestTemplateMarshalOmitsEmptySections(t *testing.T) {
	tmpl := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]ResourceDef{
			"ErrorAlarmTopic": {Type: "AWS::SNS::Topic"},
		},
	}

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.NotContains(t, parsed, "Outputs")
	assert.NotContains(t, parsed, "Transform")
	assert.Contains(t, parsed, "Resources")
}

func TestResourceDefDependsOnRoundTrip(t *testing.T) {
	def := ResourceDef{
		Type:      "AWS::ApiGateway::Account",
		DependsOn: []string{"DeliveryApi"},
	}

	data, err := json.Marshal(def)
	require.NoError(t, err)

	var parsed ResourceDef
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, []string{"DeliveryApi"}, parsed.DependsOn)
}
