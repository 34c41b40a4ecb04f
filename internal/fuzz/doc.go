// Package fuzztests houses Go fuzz harnesses that exercise the Tan pipeline
// (source -> lexer -> parser -> arranger -> formatter). Its goal is to smoke
// test robustness: no panics, no hangs, and formatted output that formats to
// itself.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
