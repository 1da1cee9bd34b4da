// Package statespace prepares observed time-series data for Bayesian state
// space modeling. Raw observations arrive as one of a sealed set of
// containers (plain matrix, labeled frame, single series, or deferred
// value), are validated against the model's observed dimensions, have their
// missing values masked behind a fill sentinel, and are registered as a
// named input of an explicit model context.
package statespace

import (
	"github.com/hammal/statespace/data"
	"github.com/hammal/statespace/model"
)

type options struct {
	obsCoords    []string
	checkColumns bool
	fill         float64
	dims         []string
	register     bool
}

// Option configures RegisterData.
type Option func(*options)

// WithObservedCoords names the observed states of the target model. Passing
// it signals that a meaningful time index is expected on the data, so
// containers without one report a DiagNoTimeIndex diagnostic.
func WithObservedCoords(names ...string) Option {
	return func(o *options) { o.obsCoords = names }
}

// WithColumnCheck requires labeled frames to carry a column for every
// observed state named by WithObservedCoords.
func WithColumnCheck() Option {
	return func(o *options) { o.checkColumns = true }
}

// WithFillValue overrides the sentinel substituted for missing values,
// data.MissingFill by default.
func WithFillValue(fill float64) Option {
	return func(o *options) { o.fill = fill }
}

// WithDims overrides the (time, observation) dimension names the data is
// registered under.
func WithDims(timeDim, obsDim string) Option {
	return func(o *options) { o.dims = []string{timeDim, obsDim} }
}

// WithoutRegistration wraps the prepared data as a standalone shared
// container instead of binding it to the model context.
func WithoutRegistration() Option {
	return func(o *options) { o.register = false }
}

// Registered is the outcome of an ingestion run: the bound model variable
// (or the standalone shared container when registration was not requested),
// the normalized row index, the missing-value mask, and any advisory
// diagnostics collected along the way.
type Registered struct {
	Var    *model.Var
	Shared *model.Shared
	Index  data.Index
	Mask   *data.Mask
	Diags  []data.Diagnostic
}

// RegisterData validates the container against the expected number of
// observed series, masks missing values, and registers the filled matrix
// under name in the context. The container's row labels become the time
// coordinate of the model.
func RegisterData(ctx *model.Context, name string, c data.Container, nObs int, opts ...Option) (*Registered, error) {
	o := options{fill: data.MissingFill, register: true}
	for _, opt := range opts {
		opt(&o)
	}

	values, idx, diags, err := data.Preprocess(c, nObs, o.checkColumns, o.obsCoords)
	if err != nil {
		return nil, err
	}

	filled, mask, maskDiags, err := data.MaskMissing(values, o.fill)
	if err != nil {
		return nil, err
	}
	diags = append(diags, maskDiags...)

	res := &Registered{Index: idx, Mask: mask, Diags: diags}
	if !o.register {
		res.Shared = model.NewShared(name, filled)
		return res, nil
	}

	v, err := ctx.AddData(name, filled, idx, o.dims)
	if err != nil {
		return nil, err
	}
	res.Var = v
	return res, nil
}
