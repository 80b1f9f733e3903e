package nutrition

import (
	"encoding/json"
	"strings"
)

// Kind tags the shape of a nutrition-lookup response. The external webhook
// answers with varying payloads; decoding pins each one to an explicit
// variant instead of probing object shape at the call sites.
type Kind string

const (
	KindRecipe       Kind = "recipe"
	KindMessage      Kind = "message"
	KindUnrecognized Kind = "unrecognized"
)

// Food is one resolved food entry from the lookup service.
type Food struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Result is the tagged variant: exactly one of Foods or Message is
// meaningful, selected by Kind. Unrecognized payloads keep the raw bytes for
// logging.
type Result struct {
	Kind    Kind            `json:"kind"`
	Foods   []Food          `json:"foods,omitempty"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

type envelope struct {
	Foods   []Food  `json:"foods"`
	Items   []Food  `json:"items"`
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

// Decode never fails: anything it cannot classify comes back as
// KindUnrecognized with the raw payload attached. An empty food list and an
// explicit "no data" message are both KindMessage, which callers surface as
// an advisory rather than an error.
func Decode(raw []byte) Result {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Result{Kind: KindUnrecognized, Raw: raw}
	}

	foods := env.Foods
	if len(foods) == 0 {
		foods = env.Items
	}
	if len(foods) > 0 {
		return Result{Kind: KindRecipe, Foods: foods}
	}

	if env.Message != nil && strings.TrimSpace(*env.Message) != "" {
		return Result{Kind: KindMessage, Message: *env.Message}
	}
	if env.Error != nil && strings.TrimSpace(*env.Error) != "" {
		return Result{Kind: KindMessage, Message: *env.Error}
	}

	return Result{Kind: KindUnrecognized, Raw: raw}
}
