package mailer

import (
	"fmt"

	"github.com/osteele/liquid"
)

var engine = liquid.NewEngine()

// RenderBody renders an email template body, binding the simulation
// variables ({{name}}, {{email}}, {{phishingUrl}}, {{trackingPixel}}). Unknown
// variables render empty rather than erroring, which matches how template
// authors iterate on bodies.
func RenderBody(body string, vars map[string]interface{}) (string, error) {
	out, err := engine.ParseAndRenderString(body, vars)
	if err != nil {
		return "", fmt.Errorf("render email body: %w", err)
	}
	return out, nil
}
