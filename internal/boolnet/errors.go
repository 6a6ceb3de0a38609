package boolnet

import "errors"

// Domain errors for network simulation.
var (
	// ErrUnknownNode indicates a target/fixed/set name absent from the network.
	ErrUnknownNode = errors.New("boolnet: unknown node")

	// ErrUnknownDiscipline indicates an unrecognized update discipline name.
	ErrUnknownDiscipline = errors.New("boolnet: unknown update discipline")

	// ErrUnknownFormat indicates a network file whose format cannot be determined.
	ErrUnknownFormat = errors.New("boolnet: unknown network file format")

	// ErrEmptyNetwork indicates a definition file that yielded no nodes.
	ErrEmptyNetwork = errors.New("boolnet: network contains no nodes")
)

// ConfigError wraps a caller-contract violation with the offending name.
type ConfigError struct {
	Name    string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return e.Wrapped.Error() + ": " + e.Name
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
