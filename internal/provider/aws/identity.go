package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/yairfalse/awsls/internal/provider"
)

// CallerIdentity returns the account and principal behind the credentials.
func (c *Client) CallerIdentity(ctx context.Context) (provider.Identity, error) {
	var output *sts.GetCallerIdentityOutput
	err := c.observe(ctx, "sts", "GetCallerIdentity", func(ctx context.Context) error {
		var err error
		output, err = c.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		return err
	})
	if err != nil {
		return provider.Identity{}, providerError("get caller identity", err)
	}

	return provider.Identity{
		Account: aws.ToString(output.Account),
		Arn:     aws.ToString(output.Arn),
		UserID:  aws.ToString(output.UserId),
	}, nil
}
