// Package interp expands $NAME references inside configuration values and
// subject templates.
//
// A reference starts at '$' and runs greedily over ASCII letters, digits and
// underscores. There is no closing syntax: a space, any other character or the
// end of the input ends it. "\$" produces a literal dollar sign and "\\" a
// literal backslash; a backslash before any other character is dropped.
//
// Names resolve against a caller-supplied Table first, then an Environment.
// A name found in neither expands to the empty string, so expansion never
// fails.
package interp
