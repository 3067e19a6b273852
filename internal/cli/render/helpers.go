package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

var stateStyles = map[domain.ProposalState]*color.Color{
	domain.StateActive:               color.New(color.FgCyan),
	domain.StateWaitingSecurityDelay: color.New(color.FgYellow),
	domain.StateApproved:             color.New(color.FgGreen, color.Bold),
	domain.StateRejected:             color.New(color.FgRed),
	domain.StateExecuted:             color.New(color.Faint),
}

// StateTitle renders WAITING_SECURITY_DELAY as "Waiting Security Delay"
func StateTitle(state domain.ProposalState) string {
	words := strings.ReplaceAll(strings.ToLower(state.String()), "_", " ")
	return cases.Title(language.English).String(words)
}

func styledState(state domain.ProposalState, useColor bool) string {
	title := StateTitle(state)
	style, ok := stateStyles[state]
	if !useColor || !ok {
		return title
	}
	return style.Sprint(title)
}

// writeStructured encodes v as json or yaml
func writeStructured(out io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func decimal(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
