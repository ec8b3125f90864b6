// Package parser reads the profile language:
//
//	app "name" { exec "cmd"; copy "file"; copy_glob "pattern" }
//
// String literals hold ASCII letters and digits plus the escapes \", \n and
// \\. The literal text is returned as written, escapes included. File names
// and glob patterns usually need '.', '/', '*' or '?', which the default
// charset rejects; WithPathLiterals admits them.
//
// Parse validates an action block that follows the name but, unless
// WithActions is given, returns the profile without its actions and logs a
// warning. Callers that apply actions opt in explicitly.
//
// Failures are reported as *ParseError, carrying the offset of the failure
// and the chain of grammar rules that were being matched when it happened.
package parser
