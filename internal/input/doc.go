// Package input provides the prompt layer shared by the plume generators.
//
// A Prompter reads one line per prompt. LinePrompter is the terminal
// implementation; tests and scripted runs pass any reader. A Session sits on
// top and turns raw lines into typed answers:
//
//	s := input.NewSession(input.NewLinePrompter(os.Stdin, os.Stdout), nil)
//	name, err := s.Text(input.Question{Key: "store", Message: "Store name"})
//	logging, err := s.Confirm(input.Question{Key: "logging", Message: "Add activity logging?"})
//
// Answers are trimmed of surrounding whitespace. No central validation is
// applied; each generator checks its own expectations (non-empty, pattern,
// enumerated choice with fallback to the default).
//
// # Answers files
//
// Pre-supplied answers let a run proceed without prompting:
//
//	store: shop
//	collections: [products, orders]
//	logging: false
//
// Keys not present in the file are prompted for as usual.
package input
