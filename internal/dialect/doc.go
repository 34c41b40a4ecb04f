// Package dialect describes formatting profiles for Tan files and the ways
// to pick one: by name, by file suffix or by looking at the parsed content.
//
// Only Code and Data change formatter behavior; Html and Css are accepted
// everywhere and format exactly like Code.
package dialect
