package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Describer drafts product descriptions for the admin editor. It is wired
// only when an API key is configured; the storefront works without it.
type Describer struct {
	client *openai.Client
}

func New(apiKey string) *Describer {
	return &Describer{client: openai.NewClient(apiKey)}
}

func (d *Describer) Suggest(ctx context.Context, name, category string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("nombre vacío")
	}
	prompt := fmt.Sprintf(`Escribe una descripción corta (máximo 60 palabras) en español para la ficha de un producto de cosmética.

Producto: %s
Categoría: %s

Tono cálido y directo, sin listas ni hashtags. Devuelve SOLO el texto.`, name, category)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Eres copywriter de una tienda de maquillaje."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("respuesta vacía")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
