// Package diagnostic provides structured errors and warnings for pipeline
// definition files.
//
// Every diagnostic carries a stable code, the transformer it concerns and
// the step path inside that transformer, so tooling can point at the exact
// place in the file. Unresolved names come with "did you mean" suggestions.
package diagnostic
