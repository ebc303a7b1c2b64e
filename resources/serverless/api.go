// Package serverless provides the SAM resource types used by the delivery stack.
package serverless

// Api is an AWS::Serverless::Api resource. Its presence sets the SAM
// transform header on the assembled template.
type Api struct {
	StageName        string                 `json:"StageName,omitempty"`
	DefinitionBody   any                    `json:"DefinitionBody,omitempty"`
	TracingEnabled   bool                   `json:"TracingEnabled,omitempty"`
	AccessLogSetting *Api_AccessLogSetting  `json:"AccessLogSetting,omitempty"`
	Cors             *Api_CorsConfiguration `json:"Cors,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Api) ResourceType() string { return "AWS::Serverless::Api" }

// Api_AccessLogSetting routes gateway access logs to a log destination.
type Api_AccessLogSetting struct {
	DestinationArn any    `json:"DestinationArn,omitempty"`
	Format         string `json:"Format,omitempty"`
}

// Api_CorsConfiguration configures CORS for all gateway routes.
type Api_CorsConfiguration struct {
	AllowOrigin  string `json:"AllowOrigin,omitempty"`
	AllowHeaders string `json:"AllowHeaders,omitempty"`
	AllowMethods string `json:"AllowMethods,omitempty"`
}
