package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/kdduha/chat-assistant/pkg/client"
)

var defaultPrompts = []string{
	"What is a goroutine?",
	"Explain the CAP theorem in two sentences.",
	"Write a haiku about garbage collection.",
	"How does TCP slow start work?",
}

func main() {
	var (
		endpoint    = flag.String("endpoint", "http://localhost:8080", "chat assistant base URL")
		promptsPath = flag.String("prompts", "", "file with one prompt per line")
		models      = flag.String("models", "", "comma-separated model ids, empty for the server's pair")
		rounds      = flag.Int("rounds", 1, "how many times to run every prompt")
	)
	flag.Parse()

	prompts := defaultPrompts
	if *promptsPath != "" {
		var err error
		prompts, err = readPrompts(*promptsPath)
		if err != nil {
			log.Fatalf("prompts: %v", err)
		}
	}

	var ids []string
	if *models != "" {
		ids = strings.Split(*models, ",")
	}

	ctx := context.Background()
	c := client.New(*endpoint)

	var results []BenchResult
	for round := 0; round < *rounds; round++ {
		for _, prompt := range prompts {
			results = append(results, benchmarkPrompt(ctx, c, prompt, ids)...)
		}
	}

	printMarkdown(os.Stdout, results)
}

func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			prompts = append(prompts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts in %s", path)
	}
	return prompts, nil
}

func benchmarkPrompt(ctx context.Context, c *client.ChatAssistantClient, prompt string, ids []string) []BenchResult {
	start := time.Now()

	resp, err := c.Compare(ctx, client.CompareRequest{Prompt: prompt, ModelIDs: ids})
	if err != nil {
		log.Println("ERR:", err)
		return []BenchResult{{Model: "-", Duration: time.Since(start), Err: err}}
	}

	results := make([]BenchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		res := BenchResult{
			Model:    r.ModelID,
			Duration: time.Duration(r.ElapsedMs) * time.Millisecond,
			Chars:    len(r.Reply),
		}
		if r.Error != nil {
			res.Err = fmt.Errorf("%s: %s", r.Error.Kind, r.Error.Message)
			log.Printf("ERR %s: %v", r.ModelID, res.Err)
		} else {
			log.Printf("OK %s %v", r.ModelID, res.Duration)
		}
		results = append(results, res)
	}
	return results
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		a := m[r.Model]
		a.Count++
		if r.Err != nil {
			a.Errors++
		} else {
			a.Total += r.Duration
			a.TotalChars += r.Chars
		}
		m[r.Model] = a
	}
	return m
}

func printMarkdown(w io.Writer, results []BenchResult) {
	fmt.Fprintln(w, "\n## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Model | Requests | Errors | Avg Time | Total Time | Avg Reply |")
	fmt.Fprintln(w, "|-------|----------|--------|----------|------------|-----------|")

	agg := aggregate(results)

	ids := make([]string, 0, len(agg))
	for id := range agg {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		a := agg[id]
		fmt.Fprintf(w, "| %s | %d | %d | %v | %v | %s |\n",
			id,
			a.Count,
			a.Errors,
			a.Avg().Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			humanChars(a.AvgChars()),
		)
	}
}

func humanChars(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM chars", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.2fk chars", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d chars", n)
	}
}
