package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/pkg/resource"
)

// CountAttributes are the instance columns InstanceCount can group by.
var CountAttributes = []string{"InstanceType", "ImageId", "VpcId", "AvailabilityZone", "SubnetId"}

// InstancesTable is the default instance listing.
func InstancesTable(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	instances, err := describeInstances(ctx, src, ids)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"InstanceId", "Tag_Name", "VpcId", "AvailabilityZone", "InstanceType",
			"InstanceState", "KeyName", "PrivateIpAddress", "LaunchTime"},
		Left:   []string{"PrivateIpAddress", "Tag_Name"},
		SortBy: "InstanceId",
	}
	for _, i := range instances {
		t.Append(cells(t.Header, i)...)
	}
	return t, nil
}

// InstancesByAMI joins every instance to the image it was launched from.
// Images that were deregistered leave their columns empty.
func InstancesByAMI(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	instances, err := describeInstances(ctx, src, ids)
	if err != nil {
		return nil, err
	}

	imageIDs := newIDSet()
	for _, i := range instances {
		imageIDs.Add(i.ImageID())
	}
	images, err := lookupTable(ctx, src, resource.KindImage, imageIDs)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"InstanceId", "Tag_Name", "ImageId", "Description", "OwnerId", "ImageOwnerAlias"},
		Left:   []string{"Description", "Tag_Name"},
		SortBy: "InstanceId",
	}
	for _, i := range instances {
		var image columner
		if doc, ok := images[i.ImageID()]; ok {
			image = resource.AsImage(doc)
		}
		t.Append(cells(t.Header, i, image)...)
	}
	return t, nil
}

// InstancesByVolume emits one row per attached EBS volume.
func InstancesByVolume(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	instances, err := describeInstances(ctx, src, ids)
	if err != nil {
		return nil, err
	}

	volumeIDs := newIDSet()
	for _, i := range instances {
		volumeIDs.Add(i.VolumeIDs()...)
	}
	volumes, err := lookupTable(ctx, src, resource.KindVolume, volumeIDs)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"InstanceId", "Tag_Name", "VolumeId", "Size", "VolumeType", "Device", "State", "DeleteOnTermination"},
		Left:   []string{"Tag_Name"},
		Right:  []string{"Size"},
		SortBy: "InstanceId",
	}
	for _, i := range instances {
		for _, volumeID := range i.VolumeIDs() {
			var volume columner
			if doc, ok := volumes[volumeID]; ok {
				volume = resource.AsVolume(doc)
			}
			row := cells(t.Header, i, volume)
			row[2] = volumeID
			t.Append(row...)
		}
	}
	return t, nil
}

// InstancesBySecGroup lists the security groups of each instance as
// "GroupId -> GroupName" lines.
func InstancesBySecGroup(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	instances, err := describeInstances(ctx, src, ids)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"InstanceId", "Tag_Name", "SecurityGroups"},
		Left:   []string{"Tag_Name", "SecurityGroups"},
		Rules:  RulesAll,
		SortBy: "InstanceId",
	}
	for _, i := range instances {
		var lines []string
		for _, g := range i.SecurityGroups() {
			lines = append(lines, g.ID+" -> "+g.Name)
		}
		t.Append(i.InstanceID(), i.Name(), strings.Join(lines, "\n"))
	}
	return t, nil
}

// InstancesByName resolves the Name tags of each instance's VPC and subnet.
// Every distinct VPC and subnet is described once.
func InstancesByName(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	instances, err := describeInstances(ctx, src, ids)
	if err != nil {
		return nil, err
	}

	vpcIDs, subnetIDs := newIDSet(), newIDSet()
	for _, i := range instances {
		vpcIDs.Add(i.VpcID())
		subnetIDs.Add(i.SubnetID())
	}
	vpcs, err := lookupTable(ctx, src, resource.KindVpc, vpcIDs)
	if err != nil {
		return nil, err
	}
	subnets, err := lookupTable(ctx, src, resource.KindSubnet, subnetIDs)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: []string{"InstanceId", "InstanceName", "VpcName", "SubnetName", "AvailabilityZone"},
		Left:   []string{"InstanceName"},
		SortBy: "InstanceId",
	}
	for _, i := range instances {
		t.Append(i.InstanceID(), i.Name(), tagName(vpcs, i.VpcID()), tagName(subnets, i.SubnetID()), i.AvailabilityZone())
	}
	return t, nil
}

func tagName(docs map[string]*resource.Document, id string) string {
	if doc, ok := docs[id]; ok {
		return doc.Name()
	}
	return ""
}

// InstancesTags lists every tag of each instance as "key -> value" lines.
// Keys come from the union over all instances, sorted. The table is always
// ordered by InstanceId.
func InstancesTags(ctx context.Context, src provider.Source, ids []string) (*Table, error) {
	instances, err := describeInstances(ctx, src, ids)
	if err != nil {
		return nil, err
	}

	keys := newIDSet()
	for _, i := range instances {
		keys.Add(i.TagKeys()...)
	}
	allKeys := keys.Slice()

	t := &Table{
		Header:    []string{"InstanceId", "Tags"},
		Left:      []string{"Tags"},
		Rules:     RulesAll,
		SortBy:    "InstanceId",
		FixedSort: true,
	}
	for _, i := range instances {
		var lines []string
		for _, key := range allKeys {
			if value := i.TagValue(key); value != "" {
				lines = append(lines, key+" -> "+value)
			}
		}
		t.Append(i.InstanceID(), strings.Join(lines, "\n"))
	}
	return t, nil
}

// InstanceCount counts instances per value of attribute.
func InstanceCount(ctx context.Context, src provider.Source, ids []string, attribute string) (*Table, error) {
	if !contains(CountAttributes, attribute) {
		return nil, fmt.Errorf("count instances: unsupported attribute %q, want one of %s",
			attribute, strings.Join(CountAttributes, ", "))
	}

	instances, err := describeInstances(ctx, src, ids)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, i := range instances {
		value, _ := i.Column(attribute)
		counts[value]++
	}

	t := &Table{
		Header: []string{attribute, "Number"},
		SortBy: attribute,
	}
	for value, n := range counts {
		t.Append(value, strconv.Itoa(n))
	}
	return t, nil
}
