package graph

import "fmt"

// GraphError reports a structural failure of the graph model itself
// (as opposed to a language-level interpreter.Error).
type GraphError struct {
	Kind    string
	Message string
}

func (e GraphError) Error() string {
	return fmt.Sprintf("graph error (%v): %v", e.Kind, e.Message)
}

func errNodeDoesNotExist(name string) error {
	return GraphError{Kind: "NodeDoesNotExist", Message: fmt.Sprintf("node %q does not exist", name)}
}
