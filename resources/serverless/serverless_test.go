package serverless_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/resources/apigateway"
	"github.com/farmlane/delivery-infra/resources/cloudwatch"
	"github.com/farmlane/delivery-infra/resources/iam"
	"github.com/farmlane/delivery-infra/resources/lambda"
	"github.com/farmlane/delivery-infra/resources/logs"
	"github.com/farmlane/delivery-infra/resources/serverless"
	"github.com/farmlane/delivery-infra/resources/sns"
)

func TestResourceTypes(t *testing.T) {
	tests := []struct {
		name     string
		resource deliveryinfra.Resource
		expected string
	}{
		{"Role", iam.Role{}, "AWS::IAM::Role"},
		{"Function", lambda.Function{}, "AWS::Lambda::Function"},
		{"Api", serverless.Api{}, "AWS::Serverless::Api"},
		{"LogGroup", logs.LogGroup{}, "AWS::Logs::LogGroup"},
		{"Topic", sns.Topic{}, "AWS::SNS::Topic"},
		{"Subscription", sns.Subscription{}, "AWS::SNS::Subscription"},
		{"Dashboard", cloudwatch.Dashboard{}, "AWS::CloudWatch::Dashboard"},
		{"Alarm", cloudwatch.Alarm{}, "AWS::CloudWatch::Alarm"},
		{"Account", apigateway.Account{}, "AWS::ApiGateway::Account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

func TestFunctionSerialization(t *testing.T) {
	fn := lambda.Function{
		FunctionName: "GetSlots",
		Runtime:      "java11",
		Handler:      "com.ilmlf.delivery.api.handlers.GetSlots",
		MemorySize:   2048,
		Timeout:      60,
		Environment: &lambda.Function_Environment{
			Variables: map[string]string{"DB_PORT": "5432"},
		},
		VpcConfig: &lambda.Function_VpcConfig{
			SubnetIds:        []string{"subnet-1", "subnet-2"},
			SecurityGroupIds: []string{"sg-1"},
		},
	}

	data, err := json.Marshal(fn)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "GetSlots", parsed["FunctionName"])
	assert.Equal(t, float64(2048), parsed["MemorySize"])
	assert.Equal(t, float64(60), parsed["Timeout"])

	env := parsed["Environment"].(map[string]any)
	vars := env["Variables"].(map[string]any)
	assert.Equal(t, "5432", vars["DB_PORT"])
}

func TestApiSerialization(t *testing.T) {
	api := serverless.Api{
		StageName:      "Prod",
		TracingEnabled: true,
		Cors: &serverless.Api_CorsConfiguration{
			AllowOrigin:  "'*'",
			AllowHeaders: "'*'",
			AllowMethods: "'*'",
		},
	}

	data, err := json.Marshal(api)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "Prod", parsed["StageName"])
	assert.Equal(t, true, parsed["TracingEnabled"])
	cors := parsed["Cors"].(map[string]any)
	assert.Equal(t, "'*'", cors["AllowOrigin"])
}
