package llm

// LLMRequest is a single prompt invocation.
type LLMRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// LLMResponse carries the completion text and why generation stopped.
type LLMResponse struct {
	Content    string
	StopReason string
}
