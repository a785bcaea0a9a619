package service

import (
	"context"
	"log"
	"sync"

	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/models"
)

type CompareService struct {
	logger   *log.Logger
	registry *llm.Registry
	defaults []string
}

// NewCompareService uses defaults when a caller gives no model list.
func NewCompareService(logger *log.Logger, registry *llm.Registry, defaults []string) *CompareService {
	return &CompareService{
		logger:   logger,
		registry: registry,
		defaults: append([]string(nil), defaults...),
	}
}

func (c *CompareService) Defaults() []string {
	return append([]string(nil), c.defaults...)
}

// Compare runs the prompt against every model concurrently. Slot i of the
// result always belongs to modelIDs[i]; a failing model only fills its own slot.
func (c *CompareService) Compare(ctx context.Context, prompt string, modelIDs []string) []llm.InvocationResult {
	results := make([]llm.InvocationResult, len(modelIDs))

	var wg sync.WaitGroup
	for i, id := range modelIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			inv, err := c.registry.Lookup(id)
			if err != nil {
				results[i] = llm.Failed(id, err)
				return
			}
			results[i] = inv.Invoke(ctx, prompt)
		}()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		c.logger.Printf("compare finished: %d of %d models failed\n", failed, len(results))
	}
	return results
}

// CompareMessage builds the prompt the same way chat does before comparing.
func (c *CompareService) CompareMessage(ctx context.Context, text string, history []models.Turn, modelIDs []string) []llm.InvocationResult {
	return c.Compare(ctx, buildPrompt(text, history), modelIDs)
}
