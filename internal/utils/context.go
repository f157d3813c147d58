package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// OperationIDCtxKey is the key used to store the id of the running
// upload or download in the context.
var OperationIDCtxKey = contextKey("operationID")

// WithOperationID returns a copy of ctx carrying the operation id.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, OperationIDCtxKey, id)
}

// GetOperationIDFromContext retrieves the operation identifier from the context.
//
// Returns the id and an ok flag:
//   - ok == true: value is found, is a string and is not empty
//   - ok == false: value is missing or has an unexpected type
//
// Example usage:
//
//	opID, ok := utils.GetOperationIDFromContext(ctx)
//	if !ok {
//	    opID = utils.NewUUIDGenerator().Generate()
//	}
func GetOperationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(OperationIDCtxKey).(string)
	return id, ok && id != ""
}
