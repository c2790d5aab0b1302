// Package gemini provides an implementation of the generation.StructuredPredictor
// interface that uses Google's Gemini models, either through the Gemini API
// or through Vertex AI.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the worker's generation logic to Google's external AI service.
// It translates role-tagged prompt messages into genai contents, asks for a
// JSON response, and classifies the reply:
//
//   - a valid JSON reply is returned as raw JSON
//   - a reply that is not JSON is returned as a
//     *generation.InvalidJSONResponseError carrying the raw text
//   - transport, provider and safety failures wrap generation.ErrGenerationFailed
//     or generation.ErrContentBlocked
//
// The client makes exactly one attempt per call.
package gemini
