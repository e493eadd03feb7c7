// Package openrouter implements the OpenRouter chat API client.
//
// The client is transport only: it signs requests, paces them, retries
// retryable failures with exponential backoff, and decodes the wire types.
// What to say to a model and how to read its answer is the agent layer's
// business.
//
// Key components:
//   - Client: HTTP client with functional options (timeout, retries,
//     attribution headers, request spacing)
//   - ChatCompletion/Complete: the /chat/completions endpoint
//   - VerifyModels: concurrent preflight check that every configured model
//     answers before a draft starts
package openrouter
