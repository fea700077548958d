// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

// Editor languages
const (
	LangJavaScript = "javascript"
	LangPython     = "python"
)

var starterTemplates = map[string]string{
	LangJavaScript: "// Write your solution in JavaScript\n// Define your function and test below\nfunction solve() {\n  // implement\n}\n\n// Example usage:\nsolve();",
	LangPython:     "# Write your solution in Python\n# Define your function and test below\n\n# def solve():\n#     pass\n\n# Example:\n# solve()",
}

// StarterTemplate is the initial editor content for technical questions.
// Unknown languages get an empty editor.
func StarterTemplate(lang string) string {
	return starterTemplates[lang]
}
