// Package output implements the OutputTarget sinks of spec.md §3: Console,
// File, Topic, Sql, and Null.
package output
