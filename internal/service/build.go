package service

import (
	"fmt"
	"strings"

	"github.com/kdduha/chat-assistant/internal/models"
)

// buildPrompt renders client-supplied history as "User:"/"Assistant:" lines
// followed by the new user line. Without history the text is used unchanged.
func buildPrompt(text string, history []models.Turn) string {
	if len(history) == 0 {
		return text
	}

	var b strings.Builder
	for _, turn := range history {
		switch turn.Role {
		case models.RoleUser:
			fmt.Fprintf(&b, userLineTemplate, turn.Content)
		case models.RoleAssistant:
			fmt.Fprintf(&b, assistantLineTemplate, turn.Content)
		}
	}
	fmt.Fprintf(&b, userLineTemplate, text)
	return b.String()
}
