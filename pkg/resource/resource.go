// Package resource defines the resource documents awsls reports on and the
// typed views over them.
package resource

import "fmt"

// Kind identifies an EC2-family resource kind.
type Kind int

const (
	KindInstance Kind = iota + 1
	KindImage
	KindVolume
	KindVpc
	KindSubnet
	KindSecurityGroup
)

var kindNames = map[Kind]string{
	KindInstance:      "instance",
	KindImage:         "image",
	KindVolume:        "volume",
	KindVpc:           "vpc",
	KindSubnet:        "subnet",
	KindSecurityGroup: "security group",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// NotFoundError is returned when the provider has no document for a kind and id.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// EmptyResultError is returned by commands whose query matched nothing.
type EmptyResultError struct {
	What string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("No %s found", e.What)
}

// ProviderError wraps a failure returned by the cloud API.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
