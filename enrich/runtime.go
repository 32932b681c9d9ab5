package enrich

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// LambdaRuntime exposes the Lambda execution context,
// implementing normalize.Runtime.
type LambdaRuntime struct {
	region string
}

// NewLambdaRuntime returns a LambdaRuntime for the given ambient region.
func NewLambdaRuntime(region string) *LambdaRuntime {
	return &LambdaRuntime{region: region}
}

// Identity returns the invoked function ARN from the Lambda context,
// empty when the context does not carry one, e.g. outside Lambda.
func (r *LambdaRuntime) Identity(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.InvokedFunctionArn
	}

	return ""
}

// Region returns the ambient region.
func (r *LambdaRuntime) Region() string {
	return r.region
}
