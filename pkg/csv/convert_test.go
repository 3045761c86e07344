package csv

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

func TestParser_ToAST(t *testing.T) {
	p, err := NewFromBytes([]byte("name,note\nAlice,\"says \"\"hi\"\"\"\n"), DefaultOptions())
	if err != nil {
		t.Fatalf("NewFromBytes() error = %v", err)
	}

	node, err := p.ToAST()
	if err != nil {
		t.Fatalf("ToAST() error = %v", err)
	}

	records := node.Elements()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	rec, ok := records[1].(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("record is %T, want *ast.ArrayDataNode", records[1])
	}
	fields := rec.Elements()
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	lit, ok := fields[1].(*ast.LiteralNode)
	if !ok {
		t.Fatalf("field is %T, want *ast.LiteralNode", fields[1])
	}
	if lit.Value() != `says "hi"` {
		t.Errorf("field value = %v, want %q", lit.Value(), `says "hi"`)
	}
}

func TestParser_ToASTEmpty(t *testing.T) {
	p, _ := NewFromBytes(nil, DefaultOptions())
	node, err := p.ToAST()
	if err != nil {
		t.Fatalf("ToAST() error = %v", err)
	}
	if len(node.Elements()) != 0 {
		t.Errorf("got %d records for empty input, want 0", len(node.Elements()))
	}
}

func TestParseFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "a,b,c\n1,,3\n\"x,y\",\"\"\"q\"\"\",z\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	node, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	want := [][]string{
		{"a", "b", "c"},
		{"1", "", "3"},
		{"x,y", `"q"`, "z"},
	}
	if got := NodeToRecords(node); !reflect.DeepEqual(got, want) {
		t.Errorf("NodeToRecords() = %q, want %q", got, want)
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions()); err == nil {
		t.Error("ParseFile() should fail for a missing file")
	}
}

func TestNodeToRecords(t *testing.T) {
	pos := ast.ZeroPosition()

	tests := []struct {
		name string
		node ast.SchemaNode
		want [][]string
	}{
		{
			name: "single record",
			node: ast.NewArrayDataNode([]ast.SchemaNode{
				ast.NewLiteralNode("a", pos),
				ast.NewLiteralNode("b", pos),
			}, pos),
			want: [][]string{{"a", "b"}},
		},
		{
			name: "empty file",
			node: ast.NewArrayDataNode([]ast.SchemaNode{}, pos),
			want: [][]string{},
		},
		{
			name: "non-array node",
			node: ast.NewLiteralNode("x", pos),
			want: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeToRecords(tt.node); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NodeToRecords() = %q, want %q", got, tt.want)
			}
		})
	}
}
