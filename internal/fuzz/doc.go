// Package fuzztests houses Go fuzz harnesses for the lexer and the parser.
// They guard against panics, hangs and loss of source bytes on arbitrary input.
//
// Назначение: загрузить байты в FileSet, прогнать через лексер/парсер и
// проверить, что токены и дерево воспроизводят вход байт в байт.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/cst,
// internal/format, internal/diag.
package fuzztests
