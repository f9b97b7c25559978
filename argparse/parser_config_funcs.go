package argparse

// ConfigureFunc configures a Parser
type ConfigureFunc func(*Parser)

// WithAggregation enables reading -xyz as -x -y -z when every character is a known
// short flag. Enabled by default.
func WithAggregation(enabled bool) ConfigureFunc {
	return func(p *Parser) {
		p.aggregation = enabled
	}
}

// WithAttachedValues enables --name=value. Enabled by default.
func WithAttachedValues(enabled bool) ConfigureFunc {
	return func(p *Parser) {
		p.attachedValues = enabled
	}
}

// WithTerminator makes a bare -- end flag recognition; every later token is positional.
// Enabled by default.
func WithTerminator(enabled bool) ConfigureFunc {
	return func(p *Parser) {
		p.terminator = enabled
	}
}
