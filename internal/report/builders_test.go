package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/pkg/resource"
)

// fakeSource serves documents from memory and counts describe calls.
type fakeSource struct {
	docs  map[resource.Kind]map[string]string
	calls map[string]int
	err   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		docs:  make(map[resource.Kind]map[string]string),
		calls: make(map[string]int),
	}
}

func (f *fakeSource) add(kind resource.Kind, id, raw string) *fakeSource {
	if f.docs[kind] == nil {
		f.docs[kind] = make(map[string]string)
	}
	f.docs[kind][id] = raw
	return f
}

func (f *fakeSource) Describe(_ context.Context, kind resource.Kind, id string) (*resource.Document, error) {
	f.calls[id]++
	if f.err != nil {
		return nil, f.err
	}
	raw, ok := f.docs[kind][id]
	if !ok {
		return nil, &resource.NotFoundError{Kind: kind, ID: id}
	}
	return resource.NewDocument(kind, id, []byte(raw))
}

const (
	instanceWeb = `{"InstanceId":"i-1","InstanceType":"t3.micro","ImageId":"ami-1","VpcId":"vpc-1","SubnetId":"subnet-1",
		"State":{"Name":"running"},"Placement":{"AvailabilityZone":"us-east-1a"},
		"SecurityGroups":[{"GroupId":"sg-1","GroupName":"web"},{"GroupId":"sg-2","GroupName":"ssh"}],
		"BlockDeviceMappings":[{"DeviceName":"/dev/xvda","Ebs":{"VolumeId":"vol-1"}},{"DeviceName":"/dev/xvdb","Ebs":{"VolumeId":"vol-2"}}],
		"Tags":[{"Key":"Name","Value":"web"},{"Key":"env","Value":"prod"}]}`
	instanceDB = `{"InstanceId":"i-2","InstanceType":"t3.large","ImageId":"ami-gone","VpcId":"vpc-1","SubnetId":"subnet-2",
		"State":{"Name":"stopped"},"Placement":{"AvailabilityZone":"us-east-1b"},
		"Tags":[{"Key":"Name","Value":"db"},{"Key":"team","Value":"data"}]}`
)

func inventory() *fakeSource {
	return newFakeSource().
		add(resource.KindInstance, "i-1", instanceWeb).
		add(resource.KindInstance, "i-2", instanceDB).
		add(resource.KindImage, "ami-1", `{"ImageId":"ami-1","Description":"base image","OwnerId":"123","ImageOwnerAlias":"amazon"}`).
		add(resource.KindVolume, "vol-1", `{"VolumeId":"vol-1","Size":8,"VolumeType":"gp3","State":"in-use",
			"Attachments":[{"Device":"/dev/xvda","InstanceId":"i-1","DeleteOnTermination":true}]}`).
		add(resource.KindVolume, "vol-2", `{"VolumeId":"vol-2","Size":100,"VolumeType":"io2","State":"in-use",
			"Attachments":[{"Device":"/dev/xvdb","InstanceId":"i-1","DeleteOnTermination":false}]}`).
		add(resource.KindVpc, "vpc-1", `{"VpcId":"vpc-1","Tags":[{"Key":"Name","Value":"main"}]}`).
		add(resource.KindSubnet, "subnet-1", `{"SubnetId":"subnet-1","Tags":[{"Key":"Name","Value":"public"}]}`)
}

func TestInstancesTable(t *testing.T) {
	table, err := InstancesTable(context.Background(), inventory(), []string{"i-1", "i-2"})
	require.NoError(t, err)

	assert.Equal(t, "InstanceId", table.SortBy)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"i-1", "web", "vpc-1", "us-east-1a", "t3.micro", "running", "", "", ""}, table.Rows[0])
}

func TestInstancesTable_MissingInstance(t *testing.T) {
	_, err := InstancesTable(context.Background(), inventory(), []string{"i-404"})
	assert.ErrorAs(t, err, new(*resource.NotFoundError))
}

func TestInstancesByAMI_DeregisteredImage(t *testing.T) {
	table, err := InstancesByAMI(context.Background(), inventory(), []string{"i-1", "i-2"})
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"i-1", "web", "ami-1", "base image", "123", "amazon"}, table.Rows[0])
	assert.Equal(t, []string{"i-2", "db", "ami-gone", "", "", ""}, table.Rows[1])
}

func TestInstancesByVolume_FansOut(t *testing.T) {
	table, err := InstancesByVolume(context.Background(), inventory(), []string{"i-1"})
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, table.Rows[0][:2], table.Rows[1][:2])
	assert.Equal(t, []string{"i-1", "web", "vol-1", "8", "gp3", "/dev/xvda", "in-use", "True"}, table.Rows[0])
	assert.Equal(t, []string{"i-1", "web", "vol-2", "100", "io2", "/dev/xvdb", "in-use", "False"}, table.Rows[1])
}

func TestInstancesBySecGroup(t *testing.T) {
	table, err := InstancesBySecGroup(context.Background(), inventory(), []string{"i-1"})
	require.NoError(t, err)

	assert.Equal(t, RulesAll, table.Rules)
	assert.Equal(t, []string{"i-1", "web", "sg-1 -> web\nsg-2 -> ssh"}, table.Rows[0])
}

func TestInstancesByName_DescribesEachJoinOnce(t *testing.T) {
	src := inventory()
	table, err := InstancesByName(context.Background(), src, []string{"i-1", "i-2"})
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls["vpc-1"])
	assert.Equal(t, []string{"i-1", "web", "main", "public", "us-east-1a"}, table.Rows[0])
	// subnet-2 is unknown to the provider
	assert.Equal(t, []string{"i-2", "db", "main", "", "us-east-1b"}, table.Rows[1])
}

func TestInstancesTags(t *testing.T) {
	table, err := InstancesTags(context.Background(), inventory(), []string{"i-2", "i-1"})
	require.NoError(t, err)

	assert.True(t, table.FixedSort)
	assert.Equal(t, []string{"i-2", "Name -> db\nteam -> data"}, table.Rows[0])
	assert.Equal(t, []string{"i-1", "Name -> web\nenv -> prod"}, table.Rows[1])
}

func TestInstanceCount(t *testing.T) {
	table, err := InstanceCount(context.Background(), inventory(), []string{"i-1", "i-2"}, "VpcId")
	require.NoError(t, err)

	assert.Equal(t, []string{"VpcId", "Number"}, table.Header)
	assert.Equal(t, [][]string{{"vpc-1", "2"}}, table.Rows)

	_, err = InstanceCount(context.Background(), inventory(), []string{"i-1"}, "KeyName")
	assert.Error(t, err)
}

func TestBuilders_PropagateProviderErrors(t *testing.T) {
	src := inventory()
	src.err = &resource.ProviderError{Op: "describe", Err: errors.New("throttled")}

	_, err := VolumesTable(context.Background(), src, []string{"vol-1"})
	assert.ErrorAs(t, err, new(*resource.ProviderError))
}

func TestSecurityGroupsTable(t *testing.T) {
	src := newFakeSource().add(resource.KindSecurityGroup, "sg-1", `{"GroupId":"sg-1","VpcId":"vpc-1","GroupName":"web",
		"Description":"web tier","IpPermissions":[{"IpProtocol":"tcp","FromPort":22,"ToPort":22,"IpRanges":[{"CidrIp":"10.0.0.0/8"}]}]}`)

	plain, err := SecurityGroupsTable(context.Background(), src, []string{"sg-1"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"sg-1", "vpc-1", "web", "web tier"}, plain.Rows[0])

	rules, err := SecurityGroupsTable(context.Background(), src, []string{"sg-1"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"GroupId", "VpcId", "GroupName", "InBound", "OutBound"}, rules.Header)
	assert.Equal(t, "10.0.0.0/8 (22 -> tcp/22)", rules.Rows[0][3])
}

func TestRegionsTable(t *testing.T) {
	table := RegionsTable([]provider.Region{{Name: "eu-west-1", Zones: []string{"eu-west-1a", "eu-west-1b"}}})
	assert.Equal(t, [][]string{{"eu-west-1", "2", "eu-west-1a, eu-west-1b"}}, table.Rows)
}

type fakeBuckets struct {
	points map[string][]provider.Datapoint
}

func (f *fakeBuckets) BucketNames(context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeBuckets) BucketDatapoints(_ context.Context, bucket string, _ provider.Metric, _ int) ([]provider.Datapoint, error) {
	return f.points[bucket], nil
}

func TestBucketMetricsTable(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	b := &fakeBuckets{points: map[string][]provider.Datapoint{
		"logs": {{Timestamp: day, Average: 2048}},
	}}

	size, err := BucketMetricsTable(context.Background(), b, []string{"logs", "empty"}, provider.BucketSizeBytes, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"BucketName", "Timestamp", "BucketSizeBytes"}, size.Header)
	assert.Equal(t, [][]string{
		{"logs", "2024-05-01 00:00:00", "2.00 KB"},
		{"empty", "", ""},
	}, size.Rows)

	count, err := BucketMetricsTable(context.Background(), b, []string{"logs"}, provider.NumberOfObjects, 4)
	require.NoError(t, err)
	assert.Equal(t, "2048", count.Rows[0][2])
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []string{"logs", "assets"}))
	assert.Equal(t, "logs\nassets\n", buf.String())
}

func TestDetail(t *testing.T) {
	color.NoColor = true

	doc, err := resource.NewDocument(resource.KindVpc, "vpc-1",
		[]byte(`{"VpcId":"vpc-1","IsDefault":false,"Ipv6CidrBlockAssociationSet":[],"OwnerId":null,
			"Tags":[{"Key":"Name","Value":"main"}]}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Detail(&buf, doc))

	want := banner + "\n# ID: vpc-1\n" + banner + "\n" +
		"VpcId: vpc-1\n" +
		"IsDefault: False\n" +
		"Tags:\n" +
		"  - Key: Name\n" +
		"    Value: main\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}
