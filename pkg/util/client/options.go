package client

import (
	"github.com/tradewatch/watchctl/pkg/util"
)

// ResourceConfig configures a single Get/List/DeleteAll call. Fields that do
// not apply to a verb are ignored by it.
type ResourceConfig struct {
	Namespace          string
	LabelSelector      string
	Limit              int64
	GracePeriodSeconds *int64
}

// ResourceOption is an option for configuring a resource operation.
type ResourceOption = util.Option[ResourceConfig]

// WithNamespace scopes the operation to a specific namespace. Without it,
// namespaced operations use the client's default namespace for writes and
// all namespaces for reads.
func WithNamespace(ns string) ResourceOption {
	return util.FunctionalOption[ResourceConfig](func(c *ResourceConfig) {
		c.Namespace = ns
	})
}

// WithLabelSelector filters resources by label selector.
func WithLabelSelector(selector string) ResourceOption {
	return util.FunctionalOption[ResourceConfig](func(c *ResourceConfig) {
		c.LabelSelector = selector
	})
}

// WithLimit caps the total number of items returned across all pages.
func WithLimit(limit int64) ResourceOption {
	return util.FunctionalOption[ResourceConfig](func(c *ResourceConfig) {
		c.Limit = limit
	})
}

// WithGracePeriod sets the deletion grace period in seconds. Zero forces
// immediate deletion.
func WithGracePeriod(seconds int64) ResourceOption {
	return util.FunctionalOption[ResourceConfig](func(c *ResourceConfig) {
		c.GracePeriodSeconds = &seconds
	})
}
