package serverside

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/gridkit/gridkit"
	"github.com/gridkit/gridkit/model"
)

const (
	// DefaultRetentionMargin is the number of blocks kept resident beyond
	// the requested window, on each side.
	DefaultRetentionMargin = 2

	// DefaultMaxResidentBlocks is the hard cap on simultaneously cached
	// blocks.
	DefaultMaxResidentBlocks = 24
)

// Options configures a server-side row model. BlockSize must be supplied by
// the caller; everything else has a sensible default.
type Options struct {
	// BlockSize is the number of rows per block, the unit of fetch and
	// eviction. Minimum 1.
	BlockSize int `mapstructure:"blockSize"`

	// RetentionMargin is the number of blocks kept resident beyond the
	// currently requested window on each side.
	RetentionMargin int `mapstructure:"retentionMargin"`

	// MaxResidentBlocks caps how many blocks stay cached simultaneously.
	MaxResidentBlocks int `mapstructure:"maxResidentBlocks"`

	Logger  *gridkit.Logger          `mapstructure:"-"`
	Metrics gridkit.MetricsCollector `mapstructure:"-"`
	Source  model.DataSource         `mapstructure:"-"`
}

// Option mutates Options.
type Option func(*Options)

// WithBlockSize sets the rows-per-block granularity.
func WithBlockSize(n int) Option {
	return func(o *Options) { o.BlockSize = n }
}

// WithRetentionMargin sets how many blocks beyond the requested window stay
// resident on each side.
func WithRetentionMargin(n int) Option {
	return func(o *Options) { o.RetentionMargin = n }
}

// WithMaxResidentBlocks caps the number of simultaneously cached blocks.
func WithMaxResidentBlocks(n int) Option {
	return func(o *Options) { o.MaxResidentBlocks = n }
}

// WithLogger configures structured logging for the model.
func WithLogger(l *gridkit.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics configures metrics collection for the model.
func WithMetrics(m gridkit.MetricsCollector) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithDataSource sets the initial data source. Equivalent to calling
// SetDataSource(source, false) after construction.
func WithDataSource(src model.DataSource) Option {
	return func(o *Options) { o.Source = src }
}

// OptionsFromParams decodes the numeric configuration keys (blockSize,
// retentionMargin, maxResidentBlocks) from a generic host parameter map, for
// hosts that configure grids from untyped metadata.
func OptionsFromParams(params map[string]any) (Option, error) {
	var decoded Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(params); err != nil {
		return nil, fmt.Errorf("serverside: decode params: %w", err)
	}
	return func(o *Options) {
		if decoded.BlockSize != 0 {
			o.BlockSize = decoded.BlockSize
		}
		if decoded.RetentionMargin != 0 {
			o.RetentionMargin = decoded.RetentionMargin
		}
		if decoded.MaxResidentBlocks != 0 {
			o.MaxResidentBlocks = decoded.MaxResidentBlocks
		}
	}, nil
}

func defaultOptions() Options {
	return Options{
		RetentionMargin:   DefaultRetentionMargin,
		MaxResidentBlocks: DefaultMaxResidentBlocks,
		Logger:            gridkit.NoopLogger(),
		Metrics:           gridkit.NoopMetricsCollector{},
	}
}

func (o *Options) validate() error {
	if o.BlockSize < 1 {
		return fmt.Errorf("serverside: block size must be >= 1, got %d", o.BlockSize)
	}
	if o.RetentionMargin < 0 {
		return fmt.Errorf("serverside: retention margin must be >= 0, got %d", o.RetentionMargin)
	}
	if o.MaxResidentBlocks < 1 {
		return fmt.Errorf("serverside: max resident blocks must be >= 1, got %d", o.MaxResidentBlocks)
	}
	return nil
}
