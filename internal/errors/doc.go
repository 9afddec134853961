// Package errors provides structured, actionable errors for the hooks runtime
// and the hooksctl CLI.
//
// Each error carries a code (e.g. "E001") that maps to a registered template:
//   - a short message describing the error
//   - a longer explanation
//
// # Categories
//
//   - runtime: misuse of the component runtime (hook outside render, hook order)
//   - network: request construction or response decoding failures
//   - config: invalid environment configuration
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("UseTimeout was called from a goroutine").
//	    WithSuggestion("Call hooks from the component's render function")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Hook called outside component render
//	//
//	//   UseTimeout was called from a goroutine
//	//
//	//   Hint: Call hooks from the component's render function
package errors
