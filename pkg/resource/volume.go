package resource

// Volume is the view over an EBS volume document.
type Volume struct {
	*Document
}

// AsVolume returns the volume view of d.
func AsVolume(d *Document) Volume { return Volume{d} }

func (v Volume) VolumeID() string { return v.Text("VolumeId") }
func (v Volume) Size() string { return v.Text("Size") }
func (v Volume) CreateTime() string { return v.Text("CreateTime") }
func (v Volume) Iops() string { return v.Text("Iops") }
func (v Volume) VolumeType() string { return v.Text("VolumeType") }
func (v Volume) State() string { return v.Text("State") }
func (v Volume) AvailabilityZone() string { return v.Text("AvailabilityZone") }

// Device joins the device names of every attachment.
func (v Volume) Device() string {
	return join(v.list("Attachments.#.Device"))
}

// DeleteOnTermination joins the flag of every attachment.
func (v Volume) DeleteOnTermination() string {
	return join(v.list("Attachments.#.DeleteOnTermination"))
}

// InstanceID joins the instance ids of every attachment.
func (v Volume) InstanceID() string {
	return join(v.list("Attachments.#.InstanceId"))
}

var volumeColumns = columns[Volume]{
	"VolumeId":            Volume.VolumeID,
	"Tag_Name":            Volume.Name,
	"Size":                Volume.Size,
	"CreateTime":          Volume.CreateTime,
	"Iops":                Volume.Iops,
	"VolumeType":          Volume.VolumeType,
	"State":               Volume.State,
	"AvailabilityZone":    Volume.AvailabilityZone,
	"Device":              Volume.Device,
	"DeleteOnTermination": Volume.DeleteOnTermination,
	"InstanceId":          Volume.InstanceID,
}

// Column renders the named report column.
func (v Volume) Column(name string) (string, bool) {
	return volumeColumns.lookup(v, name)
}
