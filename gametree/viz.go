package gametree

import (
	"fmt"
	"io"
)

// Visualize a game tree with dot.

type dotfile struct {
	declarations []string
	directives   []string
}

func genDotFile(n *Node, d *dotfile) {
	for _, child := range n.Children {
		decl := fmt.Sprintf("n_%p [label=\"%v\\n%v\"];",
			child, child.Move.ShortDescription(), child.Side)
		conn := fmt.Sprintf("n_%p -> n_%p;", n, child)
		d.declarations = append(d.declarations, decl)
		d.directives = append(d.directives, conn)
		genDotFile(child, d)
	}
}

// WriteDot writes the tree as a graphviz digraph.
func WriteDot(w io.Writer, root *Node) error {
	d := &dotfile{}
	genDotFile(root, d)
	out := "digraph {\n"
	out += fmt.Sprintf(" n_%p [label=\"%v\"]\n", root, root.Move.ShortDescription())
	for _, decl := range d.declarations {
		out += fmt.Sprintf(" %v\n", decl)
	}
	out += "\n"
	for _, dir := range d.directives {
		out += fmt.Sprintf(" %v\n", dir)
	}
	out += "}\n"
	_, err := io.WriteString(w, out)
	return err
}
