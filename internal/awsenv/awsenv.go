// Package awsenv resolves the target deployment environment from ambient
// AWS credentials.
package awsenv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/cockroachdb/errors"
)

// Environment is the account and region synthesis targets.
type Environment struct {
	Region  string
	Account string
}

// Resolve loads the default credential chain and asks STS who we are.
// Used when the region and account are not pinned in configuration.
func Resolve(ctx context.Context) (Environment, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return Environment{}, errors.Wrap(err, "loading aws configuration")
	}
	if cfg.Region == "" {
		return Environment{}, errors.New("no aws region configured")
	}

	identity, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Environment{}, errors.Wrap(err, "resolving caller identity")
	}

	return Environment{
		Region:  cfg.Region,
		Account: aws.ToString(identity.Account),
	}, nil
}
