package todo

import "github.com/mwantia/taskfilter/pkg/filter"

var (
	Statuses = []filter.Option{
		{Label: "Backlog", Value: "backlog"},
		{Label: "Todo", Value: "todo"},
		{Label: "In Progress", Value: "in progress"},
		{Label: "Done", Value: "done"},
		{Label: "Canceled", Value: "canceled"},
	}
	Priorities = []filter.Option{
		{Label: "Low", Value: "low"},
		{Label: "Medium", Value: "medium"},
		{Label: "High", Value: "high"},
	}
	Labels = []filter.Option{
		{Label: "Bug", Value: "bug"},
		{Label: "Feature", Value: "feature"},
		{Label: "Documentation", Value: "documentation"},
	}
)

var (
	selectOperators = []filter.Operator{filter.OpIs, filter.OpIsNot, filter.OpIsAnyOf, filter.OpIsNoneOf}
	dateOperators   = filter.OperatorsForType(filter.TypeDate)
	minID           = 1.0
)

// Fields is the filterable schema of a todo. The compiler only accepts
// filters on these fields.
var Fields = filter.Schema{
	{
		Field:           "text",
		Label:           "Title",
		Type:            filter.TypeText,
		Placeholder:     "Search in titles...",
		Description:     "Search in task titles",
		Operators:       []filter.Operator{filter.OpContains, filter.OpNotContains, filter.OpStartsWith, filter.OpEndsWith, filter.OpEquals, filter.OpNotEquals, filter.OpIsEmpty, filter.OpIsNotEmpty},
		DefaultOperator: filter.OpContains,
	},
	{
		Field:           "status",
		Label:           "Status",
		Type:            filter.TypeSelect,
		Description:     "Task status",
		Options:         Statuses,
		Operators:       selectOperators,
		DefaultOperator: filter.OpIs,
	},
	{
		Field:           "priority",
		Label:           "Priority",
		Type:            filter.TypeSelect,
		Description:     "Task priority level",
		Options:         Priorities,
		Operators:       selectOperators,
		DefaultOperator: filter.OpIs,
	},
	{
		Field:           "label",
		Label:           "Label",
		Type:            filter.TypeSelect,
		Description:     "Task category",
		Options:         Labels,
		Operators:       selectOperators,
		DefaultOperator: filter.OpIs,
	},
	{
		Field:           "completed",
		Label:           "Completed",
		Type:            filter.TypeBoolean,
		Description:     "Whether the task is checked off",
		DefaultOperator: filter.OpIsTrue,
	},
	{
		Field:           "created_at",
		Label:           "Created Date",
		Type:            filter.TypeDate,
		Description:     "When the task was created",
		Operators:       dateOperators,
		DefaultOperator: filter.OpIsToday,
	},
	{
		Field:           "updated_at",
		Label:           "Updated Date",
		Type:            filter.TypeDate,
		Description:     "When the task was last updated",
		Operators:       dateOperators,
		DefaultOperator: filter.OpIsToday,
	},
	{
		Field:           "id",
		Label:           "Task ID",
		Type:            filter.TypeNumber,
		Placeholder:     "Enter task ID...",
		Description:     "Unique task identifier",
		DefaultOperator: filter.OpEquals,
		Min:             &minID,
	},
	utmField("source", "UTM Source"),
	utmField("medium", "UTM Medium"),
	utmField("campaign", "UTM Campaign"),
}

func utmField(key, label string) filter.FieldConfig {
	return filter.FieldConfig{
		Field:           filter.UTMPrefix + key,
		Label:           label,
		Type:            filter.TypeUTM,
		Description:     "Tracking parameter " + key,
		DefaultOperator: filter.OpEquals,
	}
}

// OptionValues returns the values of options in order.
func OptionValues(options []filter.Option) []string {
	values := make([]string, 0, len(options))
	for _, o := range options {
		values = append(values, o.Value)
	}
	return values
}
