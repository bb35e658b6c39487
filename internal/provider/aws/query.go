package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yairfalse/awsls/internal/filter"
	"github.com/yairfalse/awsls/pkg/resource"
)

// ListIdentifiers returns the ids of every resource of kind matching f.
// Matching is done server side; an empty result is not an error.
func (c *Client) ListIdentifiers(ctx context.Context, kind resource.Kind, f *filter.Filter) ([]string, error) {
	ctx, end := c.startSpan(ctx, "list "+kind.String(), attribute.String("kind", kind.String()))
	defer end()

	var (
		ids []string
		err error
	)

	switch kind {
	case resource.KindInstance:
		ids, err = c.listInstances(ctx, f)
	case resource.KindImage:
		ids, err = c.listImages(ctx, f)
	case resource.KindVolume:
		ids, err = c.listVolumes(ctx, f)
	case resource.KindVpc:
		ids, err = c.listVpcs(ctx, f)
	case resource.KindSubnet:
		ids, err = c.listSubnets(ctx, f)
	case resource.KindSecurityGroup:
		ids, err = c.listSecurityGroups(ctx, f)
	default:
		return nil, fmt.Errorf("list %s: unsupported kind", kind)
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug().Ctx(ctx).Stringer("kind", kind).Str("filter", f.String()).Strs("ids", ids).Msg("query result")
	c.recordCount(ctx, kind, len(ids))
	return ids, nil
}

func (c *Client) listInstances(ctx context.Context, f *filter.Filter) ([]string, error) {
	var ids []string
	var nextToken *string

	for {
		var output *ec2.DescribeInstancesOutput
		err := c.observe(ctx, "ec2", "DescribeInstances", func(ctx context.Context) error {
			var err error
			output, err = c.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
				Filters:   f.EC2(),
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, providerError("describe instances", err)
		}

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				ids = append(ids, aws.ToString(instance.InstanceId))
			}
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return ids, nil
}

// listImages is limited to images owned by the account; the public catalog
// is unbounded.
func (c *Client) listImages(ctx context.Context, f *filter.Filter) ([]string, error) {
	var ids []string
	var nextToken *string

	for {
		var output *ec2.DescribeImagesOutput
		err := c.observe(ctx, "ec2", "DescribeImages", func(ctx context.Context) error {
			var err error
			output, err = c.ec2Client.DescribeImages(ctx, &ec2.DescribeImagesInput{
				Owners:    []string{"self"},
				Filters:   f.EC2(),
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, providerError("describe images", err)
		}

		for _, image := range output.Images {
			ids = append(ids, aws.ToString(image.ImageId))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return ids, nil
}

func (c *Client) listVolumes(ctx context.Context, f *filter.Filter) ([]string, error) {
	var ids []string
	var nextToken *string

	for {
		var output *ec2.DescribeVolumesOutput
		err := c.observe(ctx, "ec2", "DescribeVolumes", func(ctx context.Context) error {
			var err error
			output, err = c.ec2Client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
				Filters:   f.EC2(),
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, providerError("describe volumes", err)
		}

		for _, vol := range output.Volumes {
			ids = append(ids, aws.ToString(vol.VolumeId))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return ids, nil
}

func (c *Client) listVpcs(ctx context.Context, f *filter.Filter) ([]string, error) {
	var ids []string
	var nextToken *string

	for {
		var output *ec2.DescribeVpcsOutput
		err := c.observe(ctx, "ec2", "DescribeVpcs", func(ctx context.Context) error {
			var err error
			output, err = c.ec2Client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
				Filters:   f.EC2(),
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, providerError("describe vpcs", err)
		}

		for _, vpc := range output.Vpcs {
			ids = append(ids, aws.ToString(vpc.VpcId))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return ids, nil
}

func (c *Client) listSubnets(ctx context.Context, f *filter.Filter) ([]string, error) {
	var ids []string
	var nextToken *string

	for {
		var output *ec2.DescribeSubnetsOutput
		err := c.observe(ctx, "ec2", "DescribeSubnets", func(ctx context.Context) error {
			var err error
			output, err = c.ec2Client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
				Filters:   f.EC2(),
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, providerError("describe subnets", err)
		}

		for _, subnet := range output.Subnets {
			ids = append(ids, aws.ToString(subnet.SubnetId))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return ids, nil
}

func (c *Client) listSecurityGroups(ctx context.Context, f *filter.Filter) ([]string, error) {
	var ids []string
	var nextToken *string

	for {
		var output *ec2.DescribeSecurityGroupsOutput
		err := c.observe(ctx, "ec2", "DescribeSecurityGroups", func(ctx context.Context) error {
			var err error
			output, err = c.ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
				Filters:   f.EC2(),
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, providerError("describe security groups", err)
		}

		for _, sg := range output.SecurityGroups {
			ids = append(ids, aws.ToString(sg.GroupId))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return ids, nil
}
