package fixtext

import (
	"errors"
	"fmt"
)

// An Action is one kind of transformation step in a repair plan.
type Action string

const (
	// ActionReinterpret turns text back into the bytes it would have
	// come from under the named encoding.
	ActionReinterpret Action = "reinterpret-as"
	// ActionDecode decodes the pending bytes as the named encoding.
	ActionDecode Action = "decode-as"
	// ActionGiveUp records that the engine declined to change the text.
	ActionGiveUp Action = "give-up"
)

// A Step is one entry in a repair plan.
type Step struct {
	Action   Action `json:"action" yaml:"action"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

func (s Step) String() string {
	if s.Encoding == "" {
		return string(s.Action)
	}
	return fmt.Sprintf("%s(%s)", s.Action, s.Encoding)
}

// A Plan is the ordered record of how a repair was performed. Replaying it
// against the original input reproduces the repaired output exactly. Plans
// are produced once per repair and never mutated.
type Plan []Step

var errBadPlan = errors.New("fixtext: malformed plan")

// ApplyPlan replays p against text using the default codec registry.
func ApplyPlan(text string, p Plan) (string, error) {
	return applyPlan(DefaultRegistry(), text, p)
}

func applyPlan(reg *Registry, text string, p Plan) (string, error) {
	cur := text
	var pending []byte
	inBytes := false

	for i, step := range p {
		switch step.Action {
		case ActionGiveUp:
			continue
		case ActionReinterpret, ActionDecode:
			// handled below
		default:
			return "", fmt.Errorf("%w: unknown action %q", errBadPlan, step.Action)
		}

		codec, ok := reg.Lookup(step.Encoding)
		if !ok {
			return "", fmt.Errorf("fixtext: plan step %d names unknown encoding %q", i, step.Encoding)
		}

		var err error
		switch step.Action {
		case ActionReinterpret:
			if inBytes {
				return "", fmt.Errorf("%w: %s while bytes are pending", errBadPlan, step)
			}
			pending, err = codec.Encode(cur, ModeStrict)
			inBytes = true
		case ActionDecode:
			if !inBytes {
				return "", fmt.Errorf("%w: %s with no pending bytes", errBadPlan, step)
			}
			cur, err = codec.Decode(pending, ModeStrict)
			inBytes = false
		}
		if err != nil {
			return "", fmt.Errorf("fixtext: replaying %s: %w", step, err)
		}
	}

	if inBytes {
		return "", fmt.Errorf("%w: plan ends with bytes pending", errBadPlan)
	}
	return cur, nil
}
