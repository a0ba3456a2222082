package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/mo"

	"cmdbot/core"
	"cmdbot/models"
	"cmdbot/utils"
)

// DecodeMessage decodes a webhook body. The body must be a JSON object
// with a string "text" field.
func DecodeMessage(rawBody []byte) (models.ParsedMessage, error) {
	var body map[string]any
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return models.ParsedMessage{}, fmt.Errorf("%w: body is not a JSON object: %v", core.ErrMalformedInput, err)
	}

	text, ok := body["text"].(string)
	if !ok {
		return models.ParsedMessage{}, fmt.Errorf("%w: body has no text field", core.ErrMalformedInput)
	}

	var raw bytes.Buffer
	if err := json.Compact(&raw, rawBody); err != nil {
		return models.ParsedMessage{}, fmt.Errorf("%w: body is not a JSON object: %v", core.ErrMalformedInput, err)
	}

	return models.ParsedMessage{Text: text, Body: body, Raw: raw.Bytes()}, nil
}

// Parse extracts the command from a message text such as "@bot exchange eurusd".
// The first token is the mention and is ignored, the second is the command
// name and the rest are arguments. Every token is cut at its first newline.
// Texts with fewer than two tokens have no command.
func Parse(text string) mo.Option[models.ParsedCommand] {
	tokens := strings.Split(strings.ReplaceAll(text, "&nbsp;", " "), " ")
	if len(tokens) < 2 {
		return mo.None[models.ParsedCommand]()
	}

	args := make([]string, 0, len(tokens)-2)
	for _, token := range tokens[2:] {
		args = append(args, utils.FirstLine(token))
	}

	return mo.Some(models.ParsedCommand{
		Name: utils.FirstLine(tokens[1]),
		Args: args,
	})
}
