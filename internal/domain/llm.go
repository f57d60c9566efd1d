package domain

import (
	"github.com/invopop/jsonschema"
)

// Sampling parameters sent with every completion request.
const (
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 1.0
	DefaultTopP        = 1.0
	DefaultMaxTokens   = 1024
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionRequest is the instruction/user-content pair for one remote call.
type CompletionRequest struct {
	Instruction string
	UserContent string
}

// Message is a single chat message as sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Messages builds the system/user exchange. The system message is always
// present, even when the instruction is empty.
func (r CompletionRequest) Messages() []Message {
	return []Message{
		{Role: RoleSystem, Content: r.Instruction},
		{Role: RoleUser, Content: r.UserContent},
	}
}

func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}
