package convert

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestGoldmarkBlocks(t *testing.T) {
	c := NewGoldmark()

	tests := []struct {
		name      string
		text      string
		wantKinds []Kind
		wantText  []string
	}{
		{
			name:      "empty",
			text:      "",
			wantKinds: []Kind{},
			wantText:  []string{},
		},
		{
			name:      "heading and paragraph",
			text:      "# Title\n\nHello world",
			wantKinds: []Kind{KindHeading, KindParagraph},
			wantText:  []string{"Title", "Hello world"},
		},
		{
			name:      "soft break keeps lines",
			text:      "one\ntwo",
			wantKinds: []Kind{KindParagraph},
			wantText:  []string{"one\ntwo"},
		},
		{
			name:      "bullet list",
			text:      "- a\n- b",
			wantKinds: []Kind{KindList},
			wantText:  []string{"• a\n• b"},
		},
		{
			name:      "ordered list",
			text:      "1. x\n2. y",
			wantKinds: []Kind{KindList},
			wantText:  []string{"1. x\n2. y"},
		},
		{
			name:      "quote",
			text:      "> wise",
			wantKinds: []Kind{KindQuote},
			wantText:  []string{"wise"},
		},
		{
			name:      "rule between paragraphs",
			text:      "a\n\n---\n\nb",
			wantKinds: []Kind{KindParagraph, KindRule, KindParagraph},
			wantText:  []string{"a", "", "b"},
		},
		{
			name:      "emphasis stripped",
			text:      "say **hi** and `code`",
			wantKinds: []Kind{KindParagraph},
			wantText:  []string{"say hi and code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := c.Convert(tt.text)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if tree.Len() != len(tt.wantKinds) {
				t.Fatalf("Len() = %d, want %d", tree.Len(), len(tt.wantKinds))
			}
			for i, b := range tree.Blocks {
				if b.Kind != tt.wantKinds[i] {
					t.Errorf("block %d Kind = %q, want %q", i, b.Kind, tt.wantKinds[i])
				}
				if b.Text != tt.wantText[i] {
					t.Errorf("block %d Text = %q, want %q", i, b.Text, tt.wantText[i])
				}
			}
		})
	}
}

func TestGoldmarkHeadingLevel(t *testing.T) {
	tree, err := NewGoldmark().Convert("### Third")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if tree.Blocks[0].Level != 3 {
		t.Errorf("Level = %d, want 3", tree.Blocks[0].Level)
	}
	if !strings.Contains(tree.Blocks[0].HTML, "<h3") {
		t.Errorf("HTML = %q, want an h3 element", tree.Blocks[0].HTML)
	}
}

func TestGoldmarkCodeBlock(t *testing.T) {
	tree, err := NewGoldmark().Convert("```go\nfmt.Println()\n```")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	b := tree.Blocks[0]
	if b.Kind != KindCode {
		t.Fatalf("Kind = %q, want %q", b.Kind, KindCode)
	}
	if b.Language != "go" {
		t.Errorf("Language = %q, want %q", b.Language, "go")
	}
	if b.Text != "fmt.Println()" {
		t.Errorf("Text = %q, want %q", b.Text, "fmt.Println()")
	}
}

func TestGoldmarkTable(t *testing.T) {
	tree, err := NewGoldmark().Convert("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	b := tree.Blocks[0]
	if b.Kind != KindTable {
		t.Fatalf("Kind = %q, want %q", b.Kind, KindTable)
	}
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(b.Rows, want) {
		t.Errorf("Rows = %v, want %v", b.Rows, want)
	}
}

func TestGoldmarkNestedList(t *testing.T) {
	tree, err := NewGoldmark().Convert("- a\n  - b")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := "• a\n  • b"
	if tree.Blocks[0].Text != want {
		t.Errorf("Text = %q, want %q", tree.Blocks[0].Text, want)
	}
}

func TestGoldmarkDeterministic(t *testing.T) {
	c := NewGoldmark()
	text := "# T\n\n- a\n- b\n\n> q\n\n```\nx\n```"
	first, err := c.Convert(text)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	second, _ := c.Convert(text)
	if !reflect.DeepEqual(first, second) {
		t.Error("converting the same text twice produced different trees")
	}
	if first.HTML() == "" {
		t.Error("HTML() is empty")
	}
}

func TestErrorTree(t *testing.T) {
	tree := ErrorTree()
	if !tree.IsError() {
		t.Fatal("IsError() = false")
	}
	if tree.Blocks[0].Text != ErrorMessage {
		t.Errorf("Text = %q, want %q", tree.Blocks[0].Text, ErrorMessage)
	}

	var ok Tree
	ok.Blocks = []Block{{Kind: KindParagraph}}
	if ok.IsError() {
		t.Error("paragraph tree reported as error tree")
	}
}

func TestConversionError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&ConversionError{Err: cause})

	if !errors.Is(err, ErrConversion) {
		t.Error("errors.Is(err, ErrConversion) = false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want it to mention the cause", err.Error())
	}
}

func TestConverterFunc(t *testing.T) {
	var c Converter = ConverterFunc(func(text string) (Tree, error) {
		return Tree{}, &ConversionError{Err: errors.New(text)}
	})
	if _, err := c.Convert("bad"); !errors.Is(err, ErrConversion) {
		t.Errorf("Convert() error = %v, want ErrConversion", err)
	}
}
