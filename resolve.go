package resiligo

// RegisterOperation binds name to a strategy preset consulted when a call
// supplies neither a custom config nor an explicit strategy. Re-registering
// overwrites the previous binding.
func (o *Orchestrator) RegisterOperation(name string, s Strategy) {
	o.regMu.Lock()
	o.registrations[name] = s
	o.regMu.Unlock()
}

// RegisteredStrategy returns the strategy bound to name, if any.
func (o *Orchestrator) RegisteredStrategy(name string) (Strategy, bool) {
	o.regMu.RLock()
	s, ok := o.registrations[name]
	o.regMu.RUnlock()
	return s, ok
}

// resolveConfig produces the final config for one call. Precedence, first
// match wins: per-call custom config, per-call strategy, the operation's
// registered strategy, the balanced default. Resolution never fails and
// has no side effects.
func (o *Orchestrator) resolveConfig(name string, opts CallOptions) Config {
	if opts.Config != nil {
		return *opts.Config
	}
	if opts.Strategy != StrategyUnspecified {
		return ConfigForStrategy(opts.Strategy)
	}
	if s, ok := o.RegisteredStrategy(name); ok {
		return ConfigForStrategy(s)
	}
	return BalancedConfig()
}
