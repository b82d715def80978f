// Package format re-emits source text from a CST.
//
// Назначение: печать дерева обратно в текст, байт в байт, включая trivia.
// Не делает: переформатирования, нормализации отступов или кавычек.
// Зависимости: internal/cst, internal/token, internal/parser (только CheckRoundTrip).
package format
