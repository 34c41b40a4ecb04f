// Package layout описывает промежуточное представление форматирования:
// дерево решений (горизонтально/вертикально, отступ/выравнивание),
// которое строит arrange и рендерит format.
//
// Назначение: типы Layout, конструкторы и отладочный Dump.
// Не делает: никаких решений о раскладке и никакого рендеринга текста.
// Зависимости: internal/expr (значения аннотаций).
package layout
