// Package translation provides the translation providers used to fill
// missing strings: OpenAI chat models and Google Gemini. Providers can be
// chained with a fallback and guarded by a circuit breaker so a failing
// API does not stall a whole run.
package translation
