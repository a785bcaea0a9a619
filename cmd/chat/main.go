package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/kdduha/chat-assistant/pkg/client"
	"github.com/rivo/tview"
)

func main() {
	_ = godotenv.Load()

	defaultEndpoint := os.Getenv("CHAT_ASSISTANT_URL")
	if defaultEndpoint == "" {
		defaultEndpoint = "http://localhost:8080"
	}
	endpoint := flag.String("endpoint", defaultEndpoint, "chat assistant base URL")
	flag.Parse()

	s := newSession(client.New(*endpoint))
	if err := run(s); err != nil {
		log.Fatalf("ui error: %v", err)
	}
}

func run(s *session) error {
	app := tview.NewApplication()
	app.EnablePaste(true)

	// Writes happen on the event loop only, so no changed func is needed.
	output := tview.NewTextView().
		SetWordWrap(true).
		SetScrollable(true)
	output.SetTitle("Conversation").SetBorder(true)

	input := tview.NewInputField().SetLabel("> ")
	input.SetTitle("Message (/help)").SetBorder(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := strings.TrimSpace(input.GetText())
		if line == "" {
			return
		}
		input.SetText("")
		input.SetDisabled(true)
		fmt.Fprintf(output, "you: %s\n", line)

		go func() {
			reply, err := s.handle(ctx, line)
			app.QueueUpdateDraw(func() {
				if err == errQuit {
					app.Stop()
					return
				}
				fmt.Fprintf(output, "%s\n\n", reply)
				output.ScrollToEnd()
				input.SetDisabled(false)
			})
		}()
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(output, 0, 1, false).
		AddItem(input, 3, 0, true)

	return app.SetRoot(layout, true).SetFocus(input).Run()
}
