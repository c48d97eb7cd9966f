// Package engine ties the matcher, the command applier, and the
// journal into an editing session.
//
// A Session owns the immutable original text, the current text, and
// the command log. Edits never mutate text in place: each accepted
// command is appended to the journal and the current text is replaced
// by the result of applying it, so the current document is always
// re-derivable by replaying the journal against the original.
//
//	session, _ := engine.NewSession("cat sat")
//	session.Edit("at", 1, engine.OpReplace, "og") // current: "cog sat"
//	session.ReconstructAt(0)                      // "cat sat", log untouched
//	session.RevertTo(0)                           // rewinds and truncates
package engine
