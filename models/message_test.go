package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponsePayload_JSON(t *testing.T) {
	t.Run("text only omits attachments", func(t *testing.T) {
		data, err := json.Marshal(NewTextPayload("no match"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"message","text":"no match"}`, string(data))
	})

	t.Run("attachments use platform field names", func(t *testing.T) {
		payload := &ResponsePayload{
			Type: MessageType,
			Text: "https://example.com/a.jpg",
			Attachments: []Attachment{
				{ContentType: "image/jpg", ContentURL: "https://example.com/a.jpg"},
			},
		}
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"type": "message",
			"text": "https://example.com/a.jpg",
			"attachments": [{"contentType": "image/jpg", "contentUrl": "https://example.com/a.jpg"}]
		}`, string(data))
	})
}

func TestQuotesResponse_StringAndNumberPrices(t *testing.T) {
	body := `{"quotes":[
		{"currencyPairCode":"USDJPY","bid":"151.234","ask":"151.240"},
		{"currencyPairCode":"EURUSD","bid":1.0812,"ask":1.0813}
	]}`

	var resp QuotesResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Quotes, 2)

	assert.Equal(t, "USDJPY", resp.Quotes[0].CurrencyPairCode)
	assert.Equal(t, "151.234", resp.Quotes[0].Bid.String())
	assert.Equal(t, "151.24", resp.Quotes[0].Ask.String())
	assert.Equal(t, "1.0812", resp.Quotes[1].Bid.String())
	assert.Equal(t, "1.0813", resp.Quotes[1].Ask.String())
}
