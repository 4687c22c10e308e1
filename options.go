package session

// Options exposes configurable attributes of the repository constructors.
// Each constructor applies the fields relevant to it and ignores the rest.
type Options struct {
	// Generator mints identifiers for new and rotated sessions.
	Generator IDGenerator

	// Publisher receives lifecycle events; nil silences notifications.
	Publisher EventPublisher

	// Logger receives diagnostics for swallowed cleanup failures.
	Logger Logger

	// PurgeEvery is the cadence of the amortized purge trigger: one sweep
	// per this many current-session cache hits.
	PurgeEvery int
}

// Option mutates Options.
type Option func(*Options)

// newOptions applies options over the defaults.
func newOptions(options []Option) *Options {
	ret := &Options{PurgeEvery: defaultPurgeEvery}
	for _, option := range options {
		option(ret)
	}
	if ret.Generator == nil {
		ret.Generator = UUIDGenerator
	}
	if ret.Logger == nil {
		ret.Logger = DefaultLogger
	}
	if ret.PurgeEvery < 1 {
		ret.PurgeEvery = defaultPurgeEvery
	}
	return ret
}

// WithIDGenerator overrides the UUID-based default identifier generator.
func WithIDGenerator(generator IDGenerator) Option {
	return func(o *Options) { o.Generator = generator }
}

// WithEventPublisher sets the notification sink for lifecycle events.
func WithEventPublisher(publisher EventPublisher) Option {
	return func(o *Options) { o.Publisher = publisher }
}

// WithLogger overrides the default stderr logger.
func WithLogger(logger Logger) Option { return func(o *Options) { o.Logger = logger } }

// WithPurgeEvery sets the purge trigger cadence; values below 1 keep the default.
func WithPurgeEvery(n int) Option { return func(o *Options) { o.PurgeEvery = n } }
