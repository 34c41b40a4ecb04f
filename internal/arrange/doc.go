// Package arrange turns parsed Tan expressions into a layout tree.
//
// Назначение: решения о раскладке (одна строка или блок, отступ или
// выравнивание, привязка inline-комментариев) для каждой конструкции.
// Не делает: рендеринг текста (internal/format), разбор исходника.
// Зависимости: internal/expr, internal/layout, internal/dialect.
package arrange
