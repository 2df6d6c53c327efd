package domain

// Snapshot is a consistent read of the organization used for statistics.
type Snapshot struct {
	Departments    []Department
	TotalEmployees int64
}
