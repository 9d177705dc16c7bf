package openai

import "time"

// Config for the OpenAI chat/completions client.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	out := c
	if out.BaseURL == "" {
		out.BaseURL = "https://api.openai.com/v1"
	}
	if out.Model == "" {
		out.Model = "gpt-4o"
	}
	if out.Timeout <= 0 {
		out.Timeout = 45 * time.Second
	}
	return out
}
