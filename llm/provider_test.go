package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "k1")
	t.Setenv("ANTHROPIC_API_KEY", "k2")
	t.Setenv("GROQ_API_KEY", "k3")

	for _, provider := range []string{"", ProviderOpenAI, ProviderAnthropic, ProviderGroq, ProviderOllama} {
		client, err := NewClient(provider, "m")
		require.NoError(t, err, provider)
		assert.Equal(t, "m", client.GetModel())
	}

	_, err := NewClient("bard", "m")
	assert.EqualError(t, err, `unknown llm provider "bard"`)
}
