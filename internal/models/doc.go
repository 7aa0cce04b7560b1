// Package models lists the OpenAI chat models usable as preview backend
// model (preview.openai_model).
package models
