package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yairfalse/awsls/internal/format"
	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/pkg/resource"
)

// timestampLayout renders CloudWatch datapoint timestamps.
const timestampLayout = "2006-01-02 15:04:05"

// VolumesTable lists volumes with their attachments, grouped by instance.
func VolumesTable(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	docs, err := describeAll(ctx, src, resource.KindVolume, ids)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"VolumeId", "VolumeType", "State", "AvailabilityZone", "Size",
			"CreateTime", "InstanceId", "Device", "DeleteOnTermination"},
		Right:  []string{"Size"},
		SortBy: "InstanceId",
	}
	for _, doc := range docs {
		t.Append(cells(t.Header, resource.AsVolume(doc))...)
	}
	return t, nil
}

// VpcsTable lists VPCs.
func VpcsTable(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	docs, err := describeAll(ctx, src, resource.KindVpc, ids)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"VpcId", "Tag_Name", "CidrBlock", "DhcpOptionsId", "IsDefault", "InstanceTenancy", "State"},
		Left:   []string{"CidrBlock"},
		SortBy: "VpcId",
	}
	for _, doc := range docs {
		t.Append(cells(t.Header, resource.AsVpc(doc))...)
	}
	return t, nil
}

// SubnetsTable lists subnets.
func SubnetsTable(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	docs, err := describeAll(ctx, src, resource.KindSubnet, ids)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"SubnetId", "Tag_Name", "VpcId", "CidrBlock", "AvailableIpAddressCount",
			"AvailabilityZone", "DefaultForAz", "State"},
		Left:   []string{"CidrBlock", "Tag_Name"},
		SortBy: "SubnetId",
	}
	for _, doc := range docs {
		t.Append(cells(t.Header, resource.AsSubnet(doc))...)
	}
	return t, nil
}

// SecurityGroupsTable lists security groups. With rules set the
// description is replaced by the inbound and outbound rule summaries.
func SecurityGroupsTable(ctx context.Context, src provider.Source, ids []string, rules bool) (*Table, error) {
	docs, err := describeAll(ctx, src, resource.KindSecurityGroup, ids)
	if err != nil {
		return nil, err
	}

	header := []string{"GroupId", "VpcId", "GroupName", "Description"}
	if rules {
		header = []string{"GroupId", "VpcId", "GroupName", "InBound", "OutBound"}
	}
	t := &Table{
		Header: header,
		Left:   []string{"GroupName", "Description", "InBound", "OutBound"},
		Rules:  RulesAll,
		SortBy: "GroupId",
	}
	for _, doc := range docs {
		t.Append(cells(t.Header, resource.AsSecurityGroup(doc))...)
	}
	return t, nil
}

// RegionsTable lists regions with their availability zones.
func RegionsTable(regions []provider.Region) *Table {
	t := &Table{
		Header: []string{"Region", "NumberAvailabilityZones", "AvailabilityZones"},
		Left:   []string{"Region", "AvailabilityZones"},
		SortBy: "Region",
	}
	for _, r := range regions {
		t.Append(r.Name, strconv.Itoa(len(r.Zones)), strings.Join(r.Zones, ", "))
	}
	return t
}

// BucketMetricsTable reports one daily datapoint per row. Buckets without
// datapoints still get a row with empty metric cells.
func BucketMetricsTable(ctx context.Context, b provider.Buckets, names []string, m provider.Metric, days int) (*Table, error) {
	t := &Table{
		Header: []string{"BucketName", "Timestamp", m.Name},
		Left:   []string{"BucketName"},
		SortBy: "BucketName",
	}

	for _, name := range names {
		points, err := b.BucketDatapoints(ctx, name, m, days)
		if err != nil {
			return nil, err
		}
		if len(points) == 0 {
			t.Append(name, "", "")
			continue
		}
		for _, p := range points {
			value, err := metricValue(m, p.Average)
			if err != nil {
				return nil, fmt.Errorf("bucket %s: %w", name, err)
			}
			t.Append(name, format.EpochToHuman(p.Timestamp.Unix(), timestampLayout, true), value)
		}
	}
	return t, nil
}

func metricValue(m provider.Metric, average float64) (string, error) {
	if m.Name == provider.BucketSizeBytes.Name {
		return format.HumanSize(average)
	}
	return fmt.Sprintf("%.0f", average), nil
}

// WriteLines writes one item per line in a single write.
func WriteLines(w io.Writer, items []string) error {
	if len(items) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(items, "\n")+"\n")
	return err
}
