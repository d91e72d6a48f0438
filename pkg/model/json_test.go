package model

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestBlockJSON_Shape(t *testing.T) {
	doc := DefaultDocument()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`"id":"initial-container"`,
		`"type":"container"`,
		`"minHeight":"200px"`,
		`"backgroundColor":"#ffffff"`,
		`"children":[`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded document missing %s\n%s", want, s)
		}
	}
	if strings.Contains(s, "min-height") {
		t.Error("style keys must be persisted in camelCase")
	}
}

func TestBlockJSON_LeafHasNoChildren(t *testing.T) {
	data, err := json.Marshal(NewBlock("t", KindTitle, "x", nil))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "children") {
		t.Errorf("leaf encoded children: %s", data)
	}
	if !strings.Contains(string(data), `"styles":{}`) {
		t.Errorf("nil style should encode as empty object: %s", data)
	}

	data, err = json.Marshal(NewBlock("c", KindContainer, "", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"children":[]`) {
		t.Errorf("empty container should encode an empty children array: %s", data)
	}
}

func TestBlockJSON_Decode(t *testing.T) {
	in := `[{"id":"c","type":"container","content":"","styles":{"flexDirection":"row"},
		"children":[{"id":"t","type":"title","content":"Hi","styles":{"width":"60%"}}]}]`
	var doc Document
	if err := json.Unmarshal([]byte(in), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(doc) != 1 || doc[0].ChildCount() != 1 {
		t.Fatalf("unexpected shape: %d top-level", len(doc))
	}
	if v, _ := doc[0].StyleValue(StyleFlexDirection); v != "row" {
		t.Errorf("flexDirection = %q", v)
	}
	if v, _ := doc[0].Child(0).StyleValue(StyleWidth); v != "60%" {
		t.Errorf("child width = %q", v)
	}
}

func TestBlockJSON_ContainerWithoutChildrenField(t *testing.T) {
	for _, in := range []string{
		`{"id":"c","type":"container","content":"","styles":{}}`,
		`{"id":"c","type":"container","content":"","styles":{},"children":null}`,
	} {
		var b Block
		if err := json.Unmarshal([]byte(in), &b); err != nil {
			t.Fatalf("Unmarshal %s: %v", in, err)
		}
		if b.Children() == nil || b.ChildCount() != 0 {
			t.Errorf("%s: container should decode with an empty child list", in)
		}
	}
}

func TestBlockJSON_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing id", `{"type":"text","content":"","styles":{}}`},
		{"empty id", `{"id":"","type":"text","content":"","styles":{}}`},
		{"missing type", `{"id":"a","content":"","styles":{}}`},
		{"unknown type", `{"id":"a","type":"video","content":"","styles":{}}`},
		{"missing content", `{"id":"a","type":"text","styles":{}}`},
		{"missing styles", `{"id":"a","type":"text","content":""}`},
		{"unknown style", `{"id":"a","type":"text","content":"","styles":{"fontFamily":"x"}}`},
		{"kebab style", `{"id":"a","type":"text","content":"","styles":{"min-height":"x"}}`},
		{"numeric style", `{"id":"a","type":"text","content":"","styles":{"width":50}}`},
		{"leaf children", `{"id":"a","type":"text","content":"","styles":{},"children":[]}`},
		{"leaf null children", `{"id":"a","type":"text","content":"","styles":{},"children":null}`},
		{"null child", `{"id":"a","type":"container","content":"","styles":{},"children":[null]}`},
		{"bad nested", `{"id":"a","type":"container","content":"","styles":{},"children":[{"id":"b"}]}`},
		{"not an object", `"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Block
			err := json.Unmarshal([]byte(tt.in), &b)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidBlock) {
				t.Errorf("error %v should wrap ErrInvalidBlock", err)
			}
		})
	}
}

func TestBlockJSON_RoundTripDefault(t *testing.T) {
	data, err := json.Marshal(DefaultDocument())
	if err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got, want := IDs(doc), IDs(DefaultDocument()); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ids after round trip = %v, want %v", got, want)
	}
	title, _ := FindByID(doc, "initial-title")
	if v, _ := title.StyleValue(StyleFontWeight); v != "700" {
		t.Errorf("fontWeight = %q", v)
	}
}
