package csv

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
)

// ToAST drains the remaining rows into a shape-core AST.
//
// The result is an *ast.ArrayDataNode of records; each record is an
// *ast.ArrayDataNode of *ast.LiteralNode string fields. Record and field
// nodes carry their byte offset, line and column in the input.
func (p *Parser) ToAST() (*ast.ArrayDataNode, error) {
	records := make([]ast.SchemaNode, 0, 16)
	for {
		row, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rowToNode(row))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

func rowToNode(row *Row) *ast.ArrayDataNode {
	fields := make([]ast.SchemaNode, row.Len())
	for i, f := range row.Fields() {
		offset, _ := row.FieldOffset(i)
		line, column, _ := row.FieldPos(i)
		fields[i] = ast.NewLiteralNode(string(f), ast.NewPosition(offset, line, column))
	}
	return ast.NewArrayDataNode(fields, ast.NewPosition(row.Offset(), row.Line(), 1))
}

// ParseFile parses the file at path into a shape-core AST.
//
// Example:
//
//	node, err := csv.ParseFile("data.csv", csv.DefaultOptions())
//	records := csv.NodeToRecords(node)
//	// records[0] is the first row
func ParseFile(path string, opts Options) (ast.SchemaNode, error) {
	p, err := New(path, opts)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	return p.ToAST()
}

// NodeToRecords converts an AST produced by ToAST or ParseFile back into
// string records. A single record node is returned as one row; unknown node
// types yield no rows.
func NodeToRecords(node ast.SchemaNode) [][]string {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return [][]string{}
	}

	elements := arr.Elements()
	if len(elements) == 0 {
		return [][]string{}
	}

	// A record is an array of literals
	if _, ok := elements[0].(*ast.LiteralNode); ok {
		return [][]string{nodeToFields(arr)}
	}

	records := make([][]string, 0, len(elements))
	for _, elem := range elements {
		if rec, ok := elem.(*ast.ArrayDataNode); ok {
			records = append(records, nodeToFields(rec))
		}
	}
	return records
}

func nodeToFields(rec *ast.ArrayDataNode) []string {
	elements := rec.Elements()
	fields := make([]string, len(elements))
	for i, elem := range elements {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			continue
		}
		if s, ok := lit.Value().(string); ok {
			fields[i] = s
		} else {
			fields[i] = fmt.Sprintf("%v", lit.Value())
		}
	}
	return fields
}
