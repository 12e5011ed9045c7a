// Package methods implements an interactive console that evaluates literals
// and call expressions against the methods of a subject.
//
// A line of input is either a literal or a call. Literals are strings in
// double quotes, like "abc", or decimal numbers, like 12 or 12.5. Calls are
// parenthesized, with an operator name followed by argument expressions,
// which may themselves be calls: "(add (mul 2 3) 4)".
//
// The operator of a call names a method found through a Registry. Methods
// uses reflection over a value's exported methods; Funcs is a table of plain
// functions, which may have several overloads under one name. When more than
// one method could take the arguments, the dispatcher picks the one needing
// the least conversion, and reports ambiguity on a tie.
package methods
