// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.study-assistant/config.toml
//   - PromptStore: user-editable LLM prompts in ~/.study-assistant/prompts/
//   - LoadEnv: .env loading for provider API keys
package file
