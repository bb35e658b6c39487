// Package filter parses the single field/value filter accepted by the
// listing commands and turns it into a server-side EC2 filter.
package filter

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Filter restricts a listing to resources whose field contains Value.
type Filter struct {
	Field string
	Value string
}

// Parse reads a "FIELD=VALUE" expression. An empty expression yields a nil
// Filter, meaning no restriction.
func Parse(expr string) (*Filter, error) {
	if expr == "" {
		return nil, nil
	}
	field, value, ok := strings.Cut(expr, "=")
	if !ok {
		return nil, fmt.Errorf("invalid filter %q: expected FIELD=VALUE", expr)
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, fmt.Errorf("invalid filter %q: empty field", expr)
	}
	return &Filter{Field: field, Value: value}, nil
}

// IsEmpty returns true if no filter is configured.
func (f *Filter) IsEmpty() bool {
	return f == nil || f.Field == ""
}

// Pattern is the wildcard pattern sent to the provider.
func (f *Filter) Pattern() string {
	return "*" + f.Value + "*"
}

// EC2 returns the filter in EC2 API form, or nil when empty.
func (f *Filter) EC2() []types.Filter {
	if f.IsEmpty() {
		return nil
	}
	return []types.Filter{{
		Name:   aws.String(f.Field),
		Values: []string{f.Pattern()},
	}}
}

func (f *Filter) String() string {
	if f.IsEmpty() {
		return ""
	}
	return f.Field + "=" + f.Value
}
