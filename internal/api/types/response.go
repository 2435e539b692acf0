// internal/api/types/response.go
package types

// ListResponse wraps a list payload.
// T represents the type of data contained in the 'Data' slice.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// NewListResponse builds a ListResponse; a nil slice is encoded as [].
func NewListResponse[T any](data []T) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{Data: data, Count: len(data)}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
