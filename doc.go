// Package hjson implements the Hjson core: a comment-preserving decoder
// and a re-serializing encoder for the Hjson configuration format, a
// relaxed, human-friendly superset of JSON.
package hjson
