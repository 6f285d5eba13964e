// Package input parses the command prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Args        string // argument hint, e.g. "DATE"
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(strings.TrimSpace(input), " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	if matches[0].Args == "" {
		return matches[0].Name, true
	}
	return matches[0].Name + " ", true
}

// ParsePrompt splits "/name rest of line" into the lowercased command name
// and its trimmed argument. ok is false when input is not a command.
func ParsePrompt(input string) (name, arg string, ok bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || len(input) == 1 {
		return "", "", false
	}
	name, arg, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(arg), true
}

// Hint renders the usage line of a command, e.g. "/goto DATE".
func (c PromptCommand) Hint() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}
