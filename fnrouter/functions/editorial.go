// Package functions holds the editorial review functions: a model reviewing a
// draft either sends it back for revision or accepts it.
package functions

import (
	"fmt"

	"github.com/ZanzyTHEbar/fnrouter/fnrouter/router"
	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
)

const (
	Revise = "revise"
	Accept = "accept"
)

// ReviseDeclaration advertises the revise function.
func ReviseDeclaration() ports.FunctionDeclaration {
	return ports.FunctionDeclaration{
		Name:        Revise,
		Description: "Sends the draft for revision.",
		Parameters: ports.ObjectSchema(map[string]*ports.Schema{
			"notes": {Type: "string", Description: "The editor's notes to guide the revision."},
		}, "notes"),
	}
}

// AcceptDeclaration advertises the accept function.
func AcceptDeclaration() ports.FunctionDeclaration {
	return ports.FunctionDeclaration{
		Name:        Accept,
		Description: "Accepts the draft.",
		Parameters: ports.ObjectSchema(map[string]*ports.Schema{
			"draft": {Type: "string", Description: "The draft to accept."},
		}, "draft"),
	}
}

// Declarations returns revise then accept.
func Declarations() []ports.FunctionDeclaration {
	return []ports.FunctionDeclaration{ReviseDeclaration(), AcceptDeclaration()}
}

func ReviseDraft(notes string) string { return fmt.Sprintf("Revised draft: %s!", notes) }
func AcceptDraft(draft string) string { return fmt.Sprintf("Accepted draft: %s!", draft) }

// Registry returns handlers for every function in Declarations.
func Registry() router.Registry {
	return router.Registry{
		Revise: router.StringHandler("notes", ReviseDraft),
		Accept: router.StringHandler("draft", AcceptDraft),
	}
}
