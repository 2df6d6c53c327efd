package dto

// DataResponse wraps entity payloads as {"data": ...}.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// Data is shorthand for building a DataResponse.
func Data[T any](v T) DataResponse[T] {
	return DataResponse[T]{Data: v}
}
