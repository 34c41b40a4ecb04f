package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003
	LexBadNumber          Code = 1004
	LexBadRange           Code = 1005

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynUnclosedBracket   Code = 2003
	SynUnclosedBrace     Code = 2004
	SynUnexpectedClosing Code = 2005
	SynDanglingPrefix    Code = 2006
	SynDanglingAnn       Code = 2007

	// I/O
	IOLoadFileError Code = 4001

	// Форматирование
	FmtMalformedInput Code = 5001
	FmtNotIdempotent  Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadEscape:          "Invalid escape sequence",
	LexBadNumber:          "Invalid number literal",
	LexBadRange:           "Invalid range literal",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnclosedBracket:    "Unclosed square bracket",
	SynUnclosedBrace:      "Unclosed curly brace",
	SynUnexpectedClosing:  "Unexpected closing delimiter",
	SynDanglingPrefix:     "Quote prefix without expression",
	SynDanglingAnn:        "Annotation without expression",
	IOLoadFileError:       "I/O load file error",
	FmtMalformedInput:     "Malformed input for formatter",
	FmtNotIdempotent:      "Formatting is not idempotent",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FMT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
