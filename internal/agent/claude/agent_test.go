package claude

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagesURL(t *testing.T) {
	tests := map[string]string{
		"":                                "https://api.anthropic.com/v1/messages",
		"https://api.anthropic.com":       "https://api.anthropic.com/v1/messages",
		"https://llm-gateway.internal/":   "https://llm-gateway.internal/v1/messages",
		"https://llm-gateway.internal/v1": "https://llm-gateway.internal/v1/messages",
		"https://llm-gateway.internal/v1/messages": "https://llm-gateway.internal/v1/messages",
		"http://localhost:8080/anthropic":          "http://localhost:8080/anthropic/v1/messages",
	}
	for base, want := range tests {
		assert.Equal(t, want, messagesURL(base), base)
	}
}
