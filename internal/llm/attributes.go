package llm

import "fmt"

// Attribute is one displayable client setting.
type Attribute struct {
	Name  string
	Value string
}

// ModelAttributes returns the client's displayable settings. The list
// of fields is a static allowlist; the API key is masked at
// construction and never leaves this package in clear text.
func ModelAttributes(c *Client) []Attribute {
	return []Attribute{
		{Name: "model", Value: c.model},
		{Name: "temperature", Value: fmt.Sprintf("%g", c.temperature)},
		{Name: "api_key", Value: maskKey(c.apiKey)},
	}
}

// maskKey keeps the first four characters of a key and hides the rest.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return "****"
	}
	return string(runes[:4]) + "****"
}
