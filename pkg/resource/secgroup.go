package resource

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// SecurityGroup is the view over a security group document.
type SecurityGroup struct {
	*Document
}

// AsSecurityGroup returns the security group view of d.
func AsSecurityGroup(d *Document) SecurityGroup { return SecurityGroup{d} }

func (g SecurityGroup) GroupID() string { return g.Text("GroupId") }
func (g SecurityGroup) VpcID() string { return g.Text("VpcId") }
func (g SecurityGroup) GroupName() string { return g.Text("GroupName") }
func (g SecurityGroup) Description() string { return g.Text("Description") }

// InboundRules summarises IpPermissions, one line per source.
func (g SecurityGroup) InboundRules() string {
	return rulesSummary(g.Get("IpPermissions"))
}

// OutboundRules summarises IpPermissionsEgress, one line per destination.
func (g SecurityGroup) OutboundRules() string {
	return rulesSummary(g.Get("IpPermissionsEgress"))
}

// rulesSummary renders each rule as "<source><ports>". Within a rule the
// CIDR sources come before the peer groups.
func rulesSummary(perms gjson.Result) string {
	var lines []string
	perms.ForEach(func(_, rule gjson.Result) bool {
		ports := portDescriptor(rule)
		for _, cidr := range rule.Get("IpRanges.#.CidrIp").Array() {
			lines = append(lines, cidr.String()+ports)
		}
		for _, group := range rule.Get("UserIdGroupPairs.#.GroupId").Array() {
			lines = append(lines, group.String()+ports)
		}
		return true
	})
	return strings.Join(lines, "\n")
}

func portDescriptor(rule gjson.Result) string {
	proto := rule.Get("IpProtocol").String()
	if proto == "-1" {
		return "(any -> any/any)"
	}
	return fmt.Sprintf(" (%s -> %s/%s)", rule.Get("FromPort").String(), proto, rule.Get("ToPort").String())
}

var securityGroupColumns = columns[SecurityGroup]{
	"GroupId":     SecurityGroup.GroupID,
	"Tag_Name":    SecurityGroup.Name,
	"VpcId":       SecurityGroup.VpcID,
	"GroupName":   SecurityGroup.GroupName,
	"Description": SecurityGroup.Description,
	"InBound":     SecurityGroup.InboundRules,
	"OutBound":    SecurityGroup.OutboundRules,
}

// Column renders the named report column.
func (g SecurityGroup) Column(name string) (string, bool) {
	return securityGroupColumns.lookup(g, name)
}
