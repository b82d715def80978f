package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pycst/internal/cst"
	"pycst/internal/source"
	"pycst/internal/token"
)

// CSTNodeOutput представляет узел CST для JSON вывода. Токены выводятся
// как узлы с Type "Token".
type CSTNodeOutput struct {
	Type     string           `json:"type"`
	Kind     string           `json:"kind,omitempty"`
	Span     source.Span      `json:"span"`
	Text     string           `json:"text,omitempty"`
	Leading  []string         `json:"leading,omitempty"`
	Children []*CSTNodeOutput `json:"children,omitempty"`
}

func nodeTypeName(n cst.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*cst.")
}

// nodeLabel: имя типа, для узлов из одного токена ещё и его текст.
func nodeLabel(n cst.Node) string {
	name := nodeTypeName(n)
	els := n.Elements()
	if len(els) == 1 && els[0].Tok != nil {
		return fmt.Sprintf("%s %q", name, els[0].Tok.Text)
	}
	return name
}

// FormatCSTTree выводит дерево узлов в виде ASCII-графа.
func FormatCSTTree(w io.Writer, mod *cst.Module, fs *source.FileSet) error {
	block := renderTree(buildFileTreeNode(mod, fs))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatCSTPretty выводит дерево с отступами ├─ / └─, включая токены.
func FormatCSTPretty(w io.Writer, n cst.Node, fs *source.FileSet) error {
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", nodeTypeName(n), formatSpan(n.Span(), fs)); err != nil {
		return err
	}
	return writePrettyChildren(w, n, fs, "")
}

func writePrettyChildren(w io.Writer, n cst.Node, fs *source.FileSet, prefix string) error {
	els := n.Elements()
	for i, el := range els {
		branch, next := "├─ ", "│  "
		if i == len(els)-1 {
			branch, next = "└─ ", "   "
		}
		if el.Tok != nil {
			if _, err := fmt.Fprintf(w, "%s%s%s %q\n", prefix, branch, el.Tok.Kind, el.Tok.Text); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, nodeTypeName(el.Node), formatSpan(el.Node.Span(), fs)); err != nil {
			return err
		}
		if err := writePrettyChildren(w, el.Node, fs, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// BuildCSTOutput строит JSON-представление узла и всех его токенов.
func BuildCSTOutput(n cst.Node) *CSTNodeOutput {
	out := &CSTNodeOutput{Type: nodeTypeName(n), Span: n.Span()}
	for _, el := range n.Elements() {
		if el.Tok != nil {
			out.Children = append(out.Children, &CSTNodeOutput{
				Type:    "Token",
				Kind:    el.Tok.Kind.String(),
				Span:    el.Tok.Span,
				Text:    el.Tok.Text,
				Leading: leadingKinds(*el.Tok),
			})
			continue
		}
		out.Children = append(out.Children, BuildCSTOutput(el.Node))
	}
	return out
}

// leadingKinds перечисляет виды leading trivia токена.
func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	kinds := make([]string, len(tok.Leading))
	for i, tv := range tok.Leading {
		kinds[i] = tv.Kind.String()
	}
	return kinds
}

// FormatCSTJSON выводит CST в JSON формате
func FormatCSTJSON(w io.Writer, n cst.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildCSTOutput(n))
}
