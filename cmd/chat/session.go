package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kdduha/chat-assistant/pkg/client"
)

const helpText = `commands:
  /compare <prompt>    ask the compare models side by side
  /upload <path>...    upload files
  /models              list configured models
  /reset               forget the conversation
  /quit                exit
anything else is sent to the default model`

type assistant interface {
	Chat(ctx context.Context, req client.ChatRequest) (*client.ChatResponse, error)
	Compare(ctx context.Context, req client.CompareRequest) (*client.CompareResponse, error)
	Upload(ctx context.Context, paths ...string) (*client.UploadResponse, error)
	Models(ctx context.Context) (*client.ModelsResponse, error)
}

var errQuit = errors.New("quit")

// session keeps the conversation on the client side; the server stores nothing.
type session struct {
	api            assistant
	conversationID string
	history        []client.Turn
}

func newSession(api assistant) *session {
	return &session{api: api}
}

// handle runs one input line and returns the text to show.
func (s *session) handle(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/bye", "/exit":
		return "", errQuit
	case "/help":
		return helpText, nil
	case "/reset":
		s.conversationID = ""
		s.history = nil
		return "conversation reset", nil
	case "/models":
		return s.models(ctx), nil
	case "/compare":
		if arg == "" {
			return "usage: /compare <prompt>", nil
		}
		return s.compare(ctx, arg), nil
	case "/upload":
		if arg == "" {
			return "usage: /upload <path>...", nil
		}
		return s.upload(ctx, strings.Fields(arg)), nil
	}
	return s.chat(ctx, line), nil
}

func (s *session) chat(ctx context.Context, text string) string {
	resp, err := s.api.Chat(ctx, client.ChatRequest{
		Message:        text,
		ConversationID: s.conversationID,
		History:        s.history,
	})
	if err != nil {
		return describe(err)
	}

	s.conversationID = resp.ConversationID
	s.history = append(s.history,
		client.Turn{Role: "user", Content: text},
		client.Turn{Role: "assistant", Content: resp.Reply},
	)
	return fmt.Sprintf("[%s] %s", resp.ModelID, resp.Reply)
}

func (s *session) compare(ctx context.Context, prompt string) string {
	resp, err := s.api.Compare(ctx, client.CompareRequest{Prompt: prompt, History: s.history})
	if err != nil {
		return describe(err)
	}
	if len(resp.Results) == 0 {
		return "no models to compare"
	}

	var b strings.Builder
	for i, r := range resp.Results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s, %dms] ", r.ModelID, r.ElapsedMs)
		if r.Error != nil {
			fmt.Fprintf(&b, "error: %s: %s", r.Error.Kind, r.Error.Message)
			continue
		}
		b.WriteString(r.Reply)
	}
	return b.String()
}

func (s *session) upload(ctx context.Context, paths []string) string {
	resp, err := s.api.Upload(ctx, paths...)
	if err != nil {
		return describe(err)
	}

	lines := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		switch {
		case !r.OK && r.Error != nil:
			lines = append(lines, fmt.Sprintf("%s: failed: %s: %s", r.Filename, r.Error.Kind, r.Error.Message))
		case r.Pages > 0:
			lines = append(lines, fmt.Sprintf("%s: ok, %d bytes, %s, %d pages", r.Filename, r.Size, r.ContentType, r.Pages))
		default:
			lines = append(lines, fmt.Sprintf("%s: ok, %d bytes, %s", r.Filename, r.Size, r.ContentType))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *session) models(ctx context.Context) string {
	resp, err := s.api.Models(ctx)
	if err != nil {
		return describe(err)
	}

	lines := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		mark := " "
		if m.ID == resp.Default {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s/%s", mark, m.ID, m.Provider, m.Model))
	}
	lines = append(lines, "compare: "+strings.Join(resp.Compare, ", "))
	return strings.Join(lines, "\n")
}

func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Kind != "" {
		return fmt.Sprintf("error: %s: %s", apiErr.Kind, apiErr.Message)
	}
	return "error: " + err.Error()
}
