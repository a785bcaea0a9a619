// Package llm wraps configured model backends behind a uniform invoke operation.
package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kdduha/chat-assistant/internal/metrics"
	"github.com/kdduha/chat-assistant/internal/outcome"
)

const statsTimeout = 2 * time.Second

// Backend performs exactly one completion call against a vendor API.
// Implementations return *outcome.Error for failures they can classify.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, prompt string) (string, error)

func (f BackendFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type StatsRecorder interface {
	Record(ctx context.Context, modelID, outcome string) error
}

// InvocationResult holds either Text or Err, never both.
type InvocationResult struct {
	ModelID string
	Text    string
	Err     *outcome.Error
	Elapsed time.Duration
}

func (r InvocationResult) OK() bool {
	return r.Err == nil
}

// Failed builds a result for a model that was never called.
func Failed(modelID string, err error) InvocationResult {
	return InvocationResult{ModelID: modelID, Err: outcome.Normalize(err)}
}

// Info is the public description of a configured model.
type Info struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type Invoker struct {
	info    Info
	backend Backend
	timeout time.Duration
	logger  *log.Logger
	stats   StatsRecorder
}

func NewInvoker(info Info, backend Backend, timeout time.Duration, logger *log.Logger) *Invoker {
	return &Invoker{
		info:    info,
		backend: backend,
		timeout: timeout,
		logger:  logger,
	}
}

func (i *Invoker) ID() string {
	return i.info.ID
}

func (i *Invoker) Info() Info {
	return i.info
}

// Invoke issues one backend call bounded by the invoker timeout. It never
// retries and never panics.
func (i *Invoker) Invoke(ctx context.Context, prompt string) InvocationResult {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := i.call(ctx, prompt)
	res := InvocationResult{ModelID: i.info.ID, Elapsed: time.Since(start)}
	if oe := outcome.Normalize(err); oe != nil {
		res.Err = oe
		i.logger.Printf("model %s invocation failed after %s: %v\n", i.info.ID, res.Elapsed, oe)
	} else {
		res.Text = text
	}

	i.observe(ctx, res)
	return res
}

func (i *Invoker) call(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = outcome.New(outcome.Malformed, "backend panic: %v", r)
		}
	}()
	return i.backend.Complete(ctx, prompt)
}

func (i *Invoker) observe(ctx context.Context, res InvocationResult) {
	label := "ok"
	if res.Err != nil {
		label = string(res.Err.Kind)
	}
	metrics.ModelInvocation(i.info.ID, label, res.Elapsed)

	if i.stats == nil {
		return
	}
	statsCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
	defer cancel()
	if err := i.stats.Record(statsCtx, i.info.ID, label); err != nil {
		i.logger.Printf("stats record error: %v\n", err)
	}
}

func (i *Invoker) String() string {
	return fmt.Sprintf("%s(%s/%s)", i.info.ID, i.info.Provider, i.info.Model)
}
