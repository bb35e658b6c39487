package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/yairfalse/awsls/internal/provider"
)

// Regions lists the regions enabled for the account, each with its
// availability zones. Zones are queried region by region.
func (c *Client) Regions(ctx context.Context) ([]provider.Region, error) {
	var output *ec2.DescribeRegionsOutput
	err := c.observe(ctx, "ec2", "DescribeRegions", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
		return err
	})
	if err != nil {
		return nil, providerError("describe regions", err)
	}

	regions := make([]provider.Region, 0, len(output.Regions))
	for _, r := range output.Regions {
		name := aws.ToString(r.RegionName)

		zones, err := c.zones(ctx, name)
		if err != nil {
			return nil, err
		}
		regions = append(regions, provider.Region{Name: name, Zones: zones})
	}

	return regions, nil
}

func (c *Client) zones(ctx context.Context, region string) ([]string, error) {
	var output *ec2.DescribeAvailabilityZonesOutput
	err := c.observe(ctx, "ec2", "DescribeAvailabilityZones", func(ctx context.Context) error {
		var err error
		output, err = c.ec2Client.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{},
			func(o *ec2.Options) { o.Region = region })
		return err
	})
	if err != nil {
		return nil, providerError("describe availability zones in "+region, err)
	}

	zones := make([]string, 0, len(output.AvailabilityZones))
	for _, z := range output.AvailabilityZones {
		zones = append(zones, aws.ToString(z.ZoneName))
	}
	return zones, nil
}
