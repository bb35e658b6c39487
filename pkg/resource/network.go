package resource

// Vpc is the view over a VPC document.
type Vpc struct {
	*Document
}

// AsVpc returns the VPC view of d.
func AsVpc(d *Document) Vpc { return Vpc{d} }

func (v Vpc) VpcID() string { return v.Text("VpcId") }
func (v Vpc) CidrBlock() string { return v.Text("CidrBlock") }
func (v Vpc) DhcpOptionsID() string { return v.Text("DhcpOptionsId") }
func (v Vpc) IsDefault() string { return v.Text("IsDefault") }
func (v Vpc) InstanceTenancy() string { return v.Text("InstanceTenancy") }
func (v Vpc) State() string { return v.Text("State") }

var vpcColumns = columns[Vpc]{
	"VpcId":           Vpc.VpcID,
	"Tag_Name":        Vpc.Name,
	"CidrBlock":       Vpc.CidrBlock,
	"DhcpOptionsId":   Vpc.DhcpOptionsID,
	"IsDefault":       Vpc.IsDefault,
	"InstanceTenancy": Vpc.InstanceTenancy,
	"State":           Vpc.State,
}

// Column renders the named report column.
func (v Vpc) Column(name string) (string, bool) {
	return vpcColumns.lookup(v, name)
}

// Subnet is the view over a subnet document.
type Subnet struct {
	*Document
}

// AsSubnet returns the subnet view of d.
func AsSubnet(d *Document) Subnet { return Subnet{d} }

func (s Subnet) SubnetID() string { return s.Text("SubnetId") }
func (s Subnet) VpcID() string { return s.Text("VpcId") }
func (s Subnet) CidrBlock() string { return s.Text("CidrBlock") }
func (s Subnet) AvailableIPAddressCount() string { return s.Text("AvailableIpAddressCount") }
func (s Subnet) AvailabilityZone() string { return s.Text("AvailabilityZone") }
func (s Subnet) DefaultForAz() string { return s.Text("DefaultForAz") }
func (s Subnet) State() string { return s.Text("State") }

var subnetColumns = columns[Subnet]{
	"SubnetId":                Subnet.SubnetID,
	"Tag_Name":                Subnet.Name,
	"VpcId":                   Subnet.VpcID,
	"CidrBlock":               Subnet.CidrBlock,
	"AvailableIpAddressCount": Subnet.AvailableIPAddressCount,
	"AvailabilityZone":        Subnet.AvailabilityZone,
	"DefaultForAz":            Subnet.DefaultForAz,
	"State":                   Subnet.State,
}

// Column renders the named report column.
func (s Subnet) Column(name string) (string, bool) {
	return subnetColumns.lookup(s, name)
}
