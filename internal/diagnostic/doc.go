// Package diagnostic provides structured, accumulated errors and warnings
// for manifest parsing, annotation resolution, and capability checking.
//
// Analysis never stops at the first problem: every offending annotation site
// surfaces its own diagnostic so that one generation run reports everything.
package diagnostic
