// Package format renders layout trees into canonical Tan text.
//
// Назначение: Render (layout → текст), Format (выражения → текст),
// FormatFile (исходник → текст) и проверка идемпотентности CheckRoundTrip.
// Не делает: решений о раскладке (internal/arrange) и файлового IO.
// Зависимости: internal/arrange, internal/layout, internal/parser.
package format
