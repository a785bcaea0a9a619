package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/outcome"
)

// Registry resolves ModelIdentifiers to invokers. It is populated once at
// start and only read afterwards.
type Registry struct {
	invokers  map[string]*Invoker
	order     []string
	defaultID string
	timeout   time.Duration
	logger    *log.Logger
	stats     StatsRecorder
	closers   []io.Closer
}

func NewRegistry(defaultID string, timeout time.Duration, logger *log.Logger) *Registry {
	return &Registry{
		invokers:  make(map[string]*Invoker),
		defaultID: defaultID,
		timeout:   timeout,
		logger:    logger,
	}
}

// Build creates one backend per catalog entry.
func Build(ctx context.Context, cfg config.ModelsConfig, logger *log.Logger) (*Registry, error) {
	r := NewRegistry(cfg.Default, cfg.Timeout, logger)
	for _, entry := range cfg.Entries {
		backend, err := NewBackend(ctx, entry)
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("model %s: %w", entry.ID, err)
		}
		r.Register(Info{ID: entry.ID, Provider: entry.Provider, Model: entry.Name}, backend)
		logger.Printf("registered model %s: %s/%s\n", entry.ID, entry.Provider, entry.Name)
	}
	return r, nil
}

// NewBackend selects the vendor implementation for a catalog entry.
func NewBackend(ctx context.Context, cfg config.ModelConfig) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIBackend(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropicBackend(cfg), nil
	case config.ProviderOllama:
		return NewOllamaBackend(cfg)
	case config.ProviderGemini:
		return NewGeminiBackend(ctx, cfg)
	case config.ProviderAzure:
		return NewAzureBackend(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

// Register adds a backend under info.ID. Not safe for use once requests are served.
func (r *Registry) Register(info Info, backend Backend) {
	if _, exists := r.invokers[info.ID]; !exists {
		r.order = append(r.order, info.ID)
	}
	inv := NewInvoker(info, backend, r.timeout, r.logger)
	inv.stats = r.stats
	r.invokers[info.ID] = inv
	if c, ok := backend.(io.Closer); ok {
		r.closers = append(r.closers, c)
	}
}

func (r *Registry) Lookup(id string) (*Invoker, error) {
	inv, ok := r.invokers[id]
	if !ok {
		return nil, outcome.New(outcome.Unconfigured, "model %q is not configured (available: %v)", id, r.order)
	}
	return inv, nil
}

func (r *Registry) Default() (*Invoker, error) {
	return r.Lookup(r.defaultID)
}

func (r *Registry) DefaultID() string {
	return r.defaultID
}

// IDs returns model identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Models() []Info {
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.invokers[id].Info())
	}
	return out
}

func (r *Registry) SetStatsRecorder(stats StatsRecorder) {
	r.stats = stats
	for _, inv := range r.invokers {
		inv.stats = stats
	}
}

func (r *Registry) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
