// Package expr определяет узлы выражений Tan, которые строит парсер
// и потребляет форматтер.
//
// Назначение:
//   - tagged union Expr: листья и рекурсивный List;
//   - позиция узла (Span в байтах и Range в строках/колонках);
//   - аннотации (#name, #(k ...)) как map[string]*Expr;
//   - однострочная печать Compact и структурное сравнение Equal.
//
// Не делает: не форматирует многострочно (см. arrange/format).
package expr
