package errors

import (
	"fmt"
)

// InvalidInputError occurs when an operation is handed a value of the wrong
// shape, such as an Update with no mutation values
type InvalidInputError struct{ Message string }

// Error returns a textual representation of this InvalidInputError
func (e InvalidInputError) Error() string {
	return fmt.Sprintf("Invalid input: %s", e.Message)
}

// UnknownColumnError occurs when an operation targets a column which does not
// exist in a Schema
type UnknownColumnError struct{ Name string }

// Error returns a textual representation of this UnknownColumnError
func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// ColumnCollisionError occurs when a rename target collides with an existing
// column name
type ColumnCollisionError struct{ Name string }

// Error returns a textual representation of this ColumnCollisionError
func (e ColumnCollisionError) Error() string {
	return fmt.Sprintf("Schema already contains column with name %s", e.Name)
}

// SchemaConflictError occurs when two Schemas assign incompatible types to the
// same column name and no overwrite was requested
type SchemaConflictError struct {
	Name     string
	Existing string
	Incoming string
}

// Error returns a textual representation of this SchemaConflictError
func (e SchemaConflictError) Error() string {
	return fmt.Sprintf("Column %s has conflicting types %s and %s", e.Name, e.Existing, e.Incoming)
}

// ConfigurationError occurs when a rollup is executed with neither group-by
// keys nor summaries configured
type ConfigurationError struct{ Message string }

// Error returns a textual representation of this ConfigurationError
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("Invalid configuration: %s", e.Message)
}

// UnknownJoinTypeError occurs when an unrecognized join type token is requested
type UnknownJoinTypeError struct{ Type string }

// Error returns a textual representation of this UnknownJoinTypeError
func (e UnknownJoinTypeError) Error() string {
	return fmt.Sprintf("Unknown join type %s", e.Type)
}
