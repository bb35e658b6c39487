package resource

// Image is the view over an AMI document.
type Image struct {
	*Document
}

// AsImage returns the image view of d.
func AsImage(d *Document) Image { return Image{d} }

func (m Image) ImageID() string { return m.Text("ImageId") }
func (m Image) ImageName() string { return m.Text("Name") }
func (m Image) Description() string { return m.Text("Description") }
func (m Image) CreationDate() string { return m.Text("CreationDate") }
func (m Image) OwnerID() string { return m.Text("OwnerId") }
func (m Image) OwnerAlias() string { return m.Text("ImageOwnerAlias") }
func (m Image) RootDeviceType() string { return m.Text("RootDeviceType") }
func (m Image) State() string { return m.Text("State") }

var imageColumns = columns[Image]{
	"ImageId":         Image.ImageID,
	"Name":            Image.ImageName,
	"Tag_Name":        Image.Name,
	"Description":     Image.Description,
	"CreationDate":    Image.CreationDate,
	"OwnerId":         Image.OwnerID,
	"ImageOwnerAlias": Image.OwnerAlias,
	"RootDeviceType":  Image.RootDeviceType,
	"State":           Image.State,
}

// Column renders the named report column.
func (m Image) Column(name string) (string, bool) {
	return imageColumns.lookup(m, name)
}
