package timewalk

import (
	"go.uber.org/multierr"
)

// Stage is a transformation over the tuple stream. A stage wraps the sink
// below it: Receive may swallow, rewrite or multiply tuples before
// forwarding them to the next sink, and must propagate a downstream Stop
// unchanged so early termination reaches the walker.
//
// Flush is called at end-of-stream (and cascades down a Pipeline); a stage
// buffering windowed state must emit it there. Close releases resources
// once the stream is done, successful or not.
type Stage interface {
	Init(next Sink) error
	Receive(Tuple) Signal
	Flush() Signal
	Close() error
}

// StageFuncOption configures optional behavior for NewStageFunc stages.
type StageFuncOption func(*funcStage)

// WithFlush adds end-of-stream logic to a NewStageFunc stage.
func WithFlush(fn func(next Sink) Signal) StageFuncOption {
	return func(s *funcStage) {
		s.flushFn = fn
	}
}

// WithClose adds cleanup logic to a NewStageFunc stage.
func WithClose(fn func() error) StageFuncOption {
	return func(s *funcStage) {
		s.closeFn = fn
	}
}

// NewStageFunc creates a stateless-lifecycle Stage from a function. The
// function receives each tuple together with the downstream sink and
// returns the signal to propagate upstream.
func NewStageFunc(fn func(t Tuple, next Sink) Signal, opts ...StageFuncOption) Stage {
	s := &funcStage{fn: fn}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type funcStage struct {
	next    Sink
	fn      func(Tuple, Sink) Signal
	flushFn func(Sink) Signal
	closeFn func() error
}

func (s *funcStage) Init(next Sink) error {
	s.next = next
	return nil
}

func (s *funcStage) Receive(t Tuple) Signal {
	return s.fn(t, s.next)
}

func (s *funcStage) Flush() Signal {
	if s.flushFn != nil {
		return s.flushFn(s.next)
	}
	return Continue
}

func (s *funcStage) Close() error {
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}

// Pipeline composes stages into a single Sink. Stages are listed
// upstream-first; the terminal sink is attached with Bind. The walker
// never learns what is stacked on top of it — a Pipeline looks like any
// other sink.
type Pipeline struct {
	stages []Stage
	head   Sink
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Bind wires the stages back to front onto the terminal sink and
// initializes each one. It must be called exactly once before the
// pipeline receives tuples.
func (p *Pipeline) Bind(terminal Sink) error {
	next := terminal
	for i := len(p.stages) - 1; i >= 0; i-- {
		if err := p.stages[i].Init(next); err != nil {
			return err
		}
		next = p.stages[i]
	}
	p.head = next
	return nil
}

func (p *Pipeline) Receive(t Tuple) Signal {
	return p.head.Receive(t)
}

// Flush cascades end-of-stream front to back: an upstream stage's flush
// may feed tuples into downstream stages, which flush after it.
func (p *Pipeline) Flush() Signal {
	for _, s := range p.stages {
		if s.Flush() == Stop {
			return Stop
		}
	}
	return Continue
}

// Close closes every stage, aggregating errors.
func (p *Pipeline) Close() error {
	var err error
	for _, s := range p.stages {
		err = multierr.Append(err, s.Close())
	}
	return err
}

var (
	_ Sink    = (*Pipeline)(nil)
	_ Flusher = (*Pipeline)(nil)
)
