package aierr

import (
	"errors"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// FromOpenAI classifies an error returned by the go-openai client.
func FromOpenAI(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return FromStatus("openai", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return FromStatus("openai", reqErr.HTTPStatusCode, reqErr.Error())
	}
	return Transport("openai", err)
}

// FromAnthropic classifies an error returned by the Anthropic SDK.
func FromAnthropic(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return FromStatus("anthropic", apiErr.StatusCode, apiErr.Error())
	}
	return Transport("anthropic", err)
}

// FromGoogle classifies an error returned by the Gemini client.
func FromGoogle(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return FromStatus("google", apiErr.Code, apiErr.Message)
	}
	return Transport("google", err)
}
