package pointbsp

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

// Option configures a Tree at construction time.
type Option func(*options)

// WithLogger configures structured logging for builds, queries and snapshots.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pointbsp.BasicMetricsCollector{}
//	tree := pointbsp.New(points, pointbsp.WithMetricsCollector(metrics))
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	opts := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return opts
}
