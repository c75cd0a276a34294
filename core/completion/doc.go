// Package completion measures how much of an onboarding form has been filled in.
//
// The score is the share of mandatory fields holding a non-empty value,
// rounded half up to a whole percent. Blank strings, empty lists and empty
// objects count as missing; zero and false count as answers. A schema with
// no mandatory fields is complete.
package completion
