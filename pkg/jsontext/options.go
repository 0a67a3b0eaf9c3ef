package jsontext

// DefaultMaxDepth bounds array and object nesting when no limit is set.
const DefaultMaxDepth = 256

// Options holds parser configuration values.
// The zero value means no overrides.
type Options struct {
	maxDepth    int
	maxDepthSet bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		if src.maxDepthSet {
			merged.maxDepth = src.maxDepth
			merged.maxDepthSet = true
		}
	}
	return merged
}

// MaxDepth limits array and object nesting. Values <= 0 select DefaultMaxDepth.
func MaxDepth(value int) Options {
	return Options{maxDepth: value, maxDepthSet: true}
}

// MaxDepthValue reports the configured depth and whether it was set.
func (opts Options) MaxDepthValue() (int, bool) {
	return opts.maxDepth, opts.maxDepthSet
}

func (opts Options) resolvedMaxDepth() int {
	if !opts.maxDepthSet || opts.maxDepth <= 0 {
		return DefaultMaxDepth
	}
	return opts.maxDepth
}
