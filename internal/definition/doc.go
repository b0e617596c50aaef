// Package definition loads pipeline definition files and turns them into
// transformer types.
//
// Files are YAML (or JSON) or HCL, chosen by extension. Both describe the
// same model: a list of imported library registries and a list of named
// transformers, each with an optional parent and a list of steps.
//
// YAML:
//
//	version: "1"
//	imports: [arrays, hashes, coercions, conditionals]
//	transformers:
//	  - name: users
//	    steps:
//	      - call: mapArray
//	        do:
//	          - call: symbolizeKeys
//	          - call: renameKeys
//	            named: {user_name: name}
//	          - call: mapValue
//	            args: [age, {fn: toInteger}]
//	          - guard: isString
//	            then: {call: toSymbol}
//
// HCL:
//
//	imports = ["arrays", "hashes", "coercions"]
//
//	transformer "users" {
//	  step "mapArray" {
//	    step "symbolizeKeys" {}
//	    step "renameKeys" {
//	      named = { user_name = "name" }
//	    }
//	  }
//	}
//
// A step with nested steps (do in YAML, child blocks in HCL) is a scope: its
// body is compiled first and passed as the last argument of its call. A
// guard step applies its then steps only when the predicate holds. An
// argument of the form {fn: name, args: [...]} is a function reference.
//
// A file without imports gets every bundled registry.
package definition
