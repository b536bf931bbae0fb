// Package llm provides language model backends for filename classification.
// It supports OpenAI, Anthropic, and the Claude Code CLI behind a single Client
// interface, and wraps any Client in a Classifier that never trusts the model
// to stay within the filenames it was shown.
package llm
