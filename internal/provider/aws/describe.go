package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/yairfalse/awsls/pkg/resource"
)

// Describe fetches the full description of one resource. An empty answer
// or an EC2 "not found" style error yields *resource.NotFoundError; any
// other failure is a *resource.ProviderError.
func (c *Client) Describe(ctx context.Context, kind resource.Kind, id string) (*resource.Document, error) {
	var (
		value any
		err   error
	)

	switch kind {
	case resource.KindInstance:
		value, err = c.describeInstance(ctx, id)
	case resource.KindImage:
		value, err = c.describeImage(ctx, id)
	case resource.KindVolume:
		value, err = c.describeVolume(ctx, id)
	case resource.KindVpc:
		value, err = c.describeVpc(ctx, id)
	case resource.KindSubnet:
		value, err = c.describeSubnet(ctx, id)
	case resource.KindSecurityGroup:
		value, err = c.describeSecurityGroup(ctx, id)
	default:
		return nil, fmt.Errorf("describe %s: unsupported kind", kind)
	}

	if err != nil {
		if notFound(err) {
			return nil, &resource.NotFoundError{Kind: kind, ID: id}
		}
		return nil, providerError(fmt.Sprintf("describe %s %s", kind, id), err)
	}
	if value == nil {
		return nil, &resource.NotFoundError{Kind: kind, ID: id}
	}

	return resource.FromValue(kind, id, value)
}

// The describe helpers return a nil value, not an error, when the
// response is empty.

func (c *Client) describeInstance(ctx context.Context, id string) (any, error) {
	var output *ec2.DescribeInstancesOutput
	err := c.observe(ctx, "ec2", "DescribeInstances", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}})
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, reservation := range output.Reservations {
		if len(reservation.Instances) > 0 {
			return reservation.Instances[0], nil
		}
	}
	return nil, nil
}

func (c *Client) describeImage(ctx context.Context, id string) (any, error) {
	var output *ec2.DescribeImagesOutput
	err := c.observe(ctx, "ec2", "DescribeImages", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeImages(ctx, &ec2.DescribeImagesInput{ImageIds: []string{id}})
		return err
	})
	if err != nil || len(output.Images) == 0 {
		return nil, err
	}
	return output.Images[0], nil
}

func (c *Client) describeVolume(ctx context.Context, id string) (any, error) {
	var output *ec2.DescribeVolumesOutput
	err := c.observe(ctx, "ec2", "DescribeVolumes", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{VolumeIds: []string{id}})
		return err
	})
	if err != nil || len(output.Volumes) == 0 {
		return nil, err
	}
	return output.Volumes[0], nil
}

func (c *Client) describeVpc(ctx context.Context, id string) (any, error) {
	var output *ec2.DescribeVpcsOutput
	err := c.observe(ctx, "ec2", "DescribeVpcs", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{id}})
		return err
	})
	if err != nil || len(output.Vpcs) == 0 {
		return nil, err
	}
	return output.Vpcs[0], nil
}

func (c *Client) describeSubnet(ctx context.Context, id string) (any, error) {
	var output *ec2.DescribeSubnetsOutput
	err := c.observe(ctx, "ec2", "DescribeSubnets", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{SubnetIds: []string{id}})
		return err
	})
	if err != nil || len(output.Subnets) == 0 {
		return nil, err
	}
	return output.Subnets[0], nil
}

func (c *Client) describeSecurityGroup(ctx context.Context, id string) (any, error) {
	var output *ec2.DescribeSecurityGroupsOutput
	err := c.observe(ctx, "ec2", "DescribeSecurityGroups", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{GroupIds: []string{id}})
		return err
	})
	if err != nil || len(output.SecurityGroups) == 0 {
		return nil, err
	}
	return output.SecurityGroups[0], nil
}
