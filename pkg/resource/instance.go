package resource

import "github.com/tidwall/gjson"

// Instance is the view over an EC2 instance document.
type Instance struct {
	*Document
}

// AsInstance returns the instance view of d.
func AsInstance(d *Document) Instance { return Instance{d} }

func (i Instance) InstanceID() string { return i.Text("InstanceId") }
func (i Instance) InstanceType() string { return i.Text("InstanceType") }
func (i Instance) State() string { return i.Text("State.Name") }
func (i Instance) AvailabilityZone() string { return i.Text("Placement.AvailabilityZone") }
func (i Instance) KeyName() string { return i.Text("KeyName") }
func (i Instance) PrivateIPAddress() string { return i.Text("PrivateIpAddress") }
func (i Instance) ImageID() string { return i.Text("ImageId") }
func (i Instance) VpcID() string { return i.Text("VpcId") }
func (i Instance) SubnetID() string { return i.Text("SubnetId") }
func (i Instance) LaunchTime() string { return i.Text("LaunchTime") }

// GroupRef names a security group attached to an instance.
type GroupRef struct {
	ID   string
	Name string
}

// SecurityGroups returns the attached groups in document order.
func (i Instance) SecurityGroups() []GroupRef {
	var refs []GroupRef
	i.Get("SecurityGroups").ForEach(func(_, g gjson.Result) bool {
		refs = append(refs, GroupRef{
			ID:   g.Get("GroupId").String(),
			Name: g.Get("GroupName").String(),
		})
		return true
	})
	return refs
}

// VolumeIDs returns the EBS volume ids from the block device mappings.
func (i Instance) VolumeIDs() []string {
	return i.list("BlockDeviceMappings.#.Ebs.VolumeId")
}

var instanceColumns = columns[Instance]{
	"InstanceId":       Instance.InstanceID,
	"Tag_Name":         Instance.Name,
	"InstanceType":     Instance.InstanceType,
	"InstanceState":    Instance.State,
	"AvailabilityZone": Instance.AvailabilityZone,
	"KeyName":          Instance.KeyName,
	"PrivateIpAddress": Instance.PrivateIPAddress,
	"ImageId":          Instance.ImageID,
	"VpcId":            Instance.VpcID,
	"SubnetId":         Instance.SubnetID,
	"LaunchTime":       Instance.LaunchTime,
}

// Column renders the named report column.
func (i Instance) Column(name string) (string, bool) {
	return instanceColumns.lookup(i, name)
}
