// Package model holds the model context that named observation inputs and
// their dimension coordinates are registered into. The context is an
// explicit handle created and passed by the caller; it is not safe for
// concurrent use.
package model

import (
	"errors"
	"fmt"

	"github.com/hammal/statespace/data"
	"gonum.org/v1/gonum/mat"
)

// Default dimension names for registered observation data.
const (
	TimeDim     = "time"
	ObsStateDim = "observed_state"
)

var (
	// ErrCoordConflict is returned when data is registered whose time index
	// disagrees with a coordinate already bound under the same name.
	ErrCoordConflict = errors.New("coordinate conflicts with an already bound coordinate")
	// ErrDuplicateName is returned when a data variable is registered twice
	// under the same name.
	ErrDuplicateName = errors.New("name is already registered")
	// ErrUnknownName is returned when removing a variable the context does
	// not track.
	ErrUnknownName = errors.New("name is not part of the model")
)

// Var is a named data input tracked by a Context. Shape is a hint for the
// computational backend; a -1 axis is unconstrained. A single observed
// series is always forced to a trailing dimension of 1 so the backend does
// not attempt to broadcast it.
type Var struct {
	Name   string
	Values *mat.Dense
	Dims   [2]string
	Shape  [2]int
}

// Shared is a standalone named value container, used instead of a Var when
// data should not be bound to any model context.
type Shared struct {
	Name   string
	Values *mat.Dense
}

// NewShared wraps values as a standalone shared container.
func NewShared(name string, values *mat.Dense) *Shared {
	return &Shared{Name: name, Values: values}
}

// Context tracks the coordinates and named data inputs of a model under
// construction.
type Context struct {
	coords map[string]data.Index
	vars   map[string]*Var
}

// New returns an empty model context.
func New() *Context {
	return &Context{
		coords: make(map[string]data.Index),
		vars:   make(map[string]*Var),
	}
}

// DeclareCoord declares a dimension name without binding label values to it.
// A later BindCoord adopts the declared dimension.
func (c *Context) DeclareCoord(name string) {
	if _, ok := c.coords[name]; !ok {
		c.coords[name] = nil
	}
}

// Coord returns the labels bound under name. The index is nil when the
// dimension was declared without values.
func (c *Context) Coord(name string) (data.Index, bool) {
	idx, ok := c.coords[name]
	return idx, ok
}

// BindCoord binds a label sequence under the dimension name: it creates the
// coordinate if absent, adopts it if declared without values, and fails with
// ErrCoordConflict if a different label sequence is already bound.
func (c *Context) BindCoord(name string, idx data.Index) error {
	found, ok := c.coords[name]
	if !ok || found == nil {
		c.coords[name] = idx
		return nil
	}
	if !found.Equal(idx) {
		return fmt.Errorf(
			"time index of the provided data differs from the %q coordinate: %w",
			name, ErrCoordConflict)
	}
	return nil
}

// AddData registers values as a named model input. The row labels are bound
// as the time-dimension coordinate via BindCoord. dims optionally names the
// (time, observation) dimension pair; nil selects TimeDim and ObsStateDim.
// A name may only be registered once per context.
func (c *Context) AddData(name string, values *mat.Dense, idx data.Index, dims []string) (*Var, error) {
	if _, ok := c.vars[name]; ok {
		return nil, fmt.Errorf("data variable %q: %w", name, ErrDuplicateName)
	}
	var dimPair [2]string
	switch len(dims) {
	case 0:
		dimPair = [2]string{TimeDim, ObsStateDim}
	case 2:
		dimPair = [2]string{dims[0], dims[1]}
	default:
		return nil, fmt.Errorf("expected a (time, observation) dimension pair, got %d names", len(dims))
	}

	if err := c.BindCoord(dimPair[0], idx); err != nil {
		return nil, err
	}

	_, cols := values.Dims()
	shape := [2]int{-1, cols}

	v := &Var{Name: name, Values: values, Dims: dimPair, Shape: shape}
	c.vars[name] = v
	return v, nil
}

// Var returns the registered data variable with the given name.
func (c *Context) Var(name string) (*Var, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Remove drops a tracked variable from the context.
func (c *Context) Remove(name string) error {
	if _, ok := c.vars[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownName)
	}
	delete(c.vars, name)
	return nil
}
