// Package lambda provides the Lambda resource types used by the delivery stack.
package lambda

// Function is an AWS::Lambda::Function resource.
type Function struct {
	FunctionName  string                `json:"FunctionName,omitempty"`
	Description   string                `json:"Description,omitempty"`
	Runtime       string                `json:"Runtime,omitempty"`
	Handler       string                `json:"Handler,omitempty"`
	PackageType   string                `json:"PackageType,omitempty"`
	MemorySize    int                   `json:"MemorySize,omitempty"`
	Timeout       int                   `json:"Timeout,omitempty"`
	Role          any                   `json:"Role,omitempty"`
	Code          *Function_Code        `json:"Code,omitempty"`
	Environment   *Function_Environment `json:"Environment,omitempty"`
	VpcConfig     *Function_VpcConfig   `json:"VpcConfig,omitempty"`
	TracingConfig *Function_Tracing     `json:"TracingConfig,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Function) ResourceType() string { return "AWS::Lambda::Function" }

// Function_Code locates the function package. Asset-backed functions leave
// the S3 fields empty; the deployment engine fills them from the resource's
// asset metadata after staging.
type Function_Code struct {
	S3Bucket string `json:"S3Bucket,omitempty"`
	S3Key    string `json:"S3Key,omitempty"`
	ImageUri string `json:"ImageUri,omitempty"`
	ZipFile  string `json:"ZipFile,omitempty"`
}

// Function_Environment holds the environment variable mapping.
type Function_Environment struct {
	Variables map[string]string `json:"Variables,omitempty"`
}

// Function_VpcConfig places the function inside the database VPC.
type Function_VpcConfig struct {
	SubnetIds        []string `json:"SubnetIds,omitempty"`
	SecurityGroupIds []string `json:"SecurityGroupIds,omitempty"`
}

// Function_Tracing enables X-Ray tracing for the function.
type Function_Tracing struct {
	Mode string `json:"Mode,omitempty"`
}
