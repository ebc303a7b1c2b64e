// Package intrinsics provides the CloudFormation intrinsic functions used
// by the delivery stack.
//
// Core intrinsic types are re-exported from cloudformation-schema-go;
// IAM policy document types live in policy.go.
//
//	Sub{String: "https://${DeliveryApi}.execute-api.us-east-1.amazonaws.com/Prod"}
//	Join{Delimiter: ":", Values: []any{"a", "b"}}
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// SubWithMap is Fn::Sub with a variable map.
	SubWithMap = intrinsics.SubWithMap

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join
)

// Pseudo-parameters predefined by CloudFormation, available in every
// template. Re-exported from the shared package.
var (
	// AWS_ACCOUNT_ID returns the account ID the stack is created in.
	AWS_ACCOUNT_ID = intrinsics.AWS_ACCOUNT_ID

	// AWS_REGION returns the region the stack is created in.
	AWS_REGION = intrinsics.AWS_REGION

	// AWS_STACK_NAME returns the name of the stack.
	AWS_STACK_NAME = intrinsics.AWS_STACK_NAME

	// AWS_URL_SUFFIX returns the suffix for a domain (usually amazonaws.com).
	AWS_URL_SUFFIX = intrinsics.AWS_URL_SUFFIX
)
