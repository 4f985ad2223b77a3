package logvisor

/*
Dispatch: delivery of one envelope to every registered sink and the
severity side effects applied afterwards. Responsible for:
  - holding the dispatch lock for the whole fan-out (total per-sink order)
  - recovering sink panics so one broken sink cannot starve the others
  - reporting sink failures to the fallback writer
  - error counting, breakpoint hook and process exit after the fan-out
*/

// dispatch stamps env with the uptime and frame index, hands it to every
// sink in registration order and then applies the level side effects. The
// dispatch lock is released before the exit hook runs.
func (r *Registry) dispatch(env *Envelope) {
	exit, breakpoint := r.fanOut(env)
	switch env.Level {
	case LVL_ERROR:
		r.errcnt.Add(1)
		breakpoint(env)
	case LVL_FATAL:
		breakpoint(env)
		exit()
	}
}

// fanOut runs with the dispatch lock held and returns the hooks seen under
// the same lock.
func (r *Registry) fanOut(env *Envelope) (exit func(), breakpoint func(*Envelope)) {
	r.sync.dispMtx.Lock()
	defer r.sync.dispMtx.Unlock()
	env.Uptime = r.clock.uptime()
	env.Frame = r.frame.Load()
	for _, s := range r.sinks {
		r.reportToSink(s, env)
	}
	return r.exit, r.breakpoint
}

// reportToSink delivers env to one sink. A returned error or a panic is
// written to the fallback and does not stop the fan-out.
func (r *Registry) reportToSink(s Sink, env *Envelope) {
	defer func() {
		if p := recover(); p != nil {
			r.handleSinkError(_ERROR_MESSAGE_SINK_PANICKED + panicDesc(p))
		}
	}()
	if err := s.Report(env); err != nil {
		r.handleSinkError(_ERROR_MESSAGE_SINK_FAILED + ": " + err.Error())
	}
}

// handleSinkError writes a human-readable error line to the fallback
// writer. A read lock is used since we only need consistent access to fallbck.
func (r *Registry) handleSinkError(errormsg string) {
	r.sync.fbckMtx.RLock()
	defer r.sync.fbckMtx.RUnlock()
	if r.fallbck != nil {
		r.fallbck.Write([]byte(errormsg + "\n"))
	}
}
