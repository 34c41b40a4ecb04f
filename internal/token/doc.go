// Package token defines the lexical vocabulary of Tan source files.
//
// Назначение: виды токенов и сам Token со Span.
// Не делает: классификацию форм (let/if/...) — это работа arrange.
package token
