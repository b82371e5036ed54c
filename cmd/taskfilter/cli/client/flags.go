package client

import (
	"github.com/mwantia/taskfilter/pkg/filter"
	"github.com/spf13/cobra"
)

// SimpleFlags binds the simple filter parameters to command flags.
type SimpleFlags struct {
	Search   string
	Status   []string
	Priority []string
	Label    []string
}

func (sf *SimpleFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sf.Search, filter.ParamSearch, "", "free text search")
	cmd.Flags().StringSliceVar(&sf.Status, filter.ParamStatus, nil, "status values")
	cmd.Flags().StringSliceVar(&sf.Priority, filter.ParamPriority, nil, "priority values")
	cmd.Flags().StringSliceVar(&sf.Label, filter.ParamLabel, nil, "label values")
}

func (sf *SimpleFlags) Params() filter.SimpleParams {
	return filter.SimpleParams{
		Search:   sf.Search,
		Status:   sf.Status,
		Priority: sf.Priority,
		Label:    sf.Label,
	}
}
