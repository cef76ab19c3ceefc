// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import "testing"

func classifyAll(t *testing.T, src string) []RawToken {
	t.Helper()
	c := NewClassifier(src)
	var out []RawToken
	for {
		tok, err := c.Next()
		if err != nil {
			t.Fatalf("classify %q: %v", src, err)
		}
		if tok.Kind == EOF {
			return out
		}
		out = append(out, tok)
	}
}

func TestClassifierPunctuators(t *testing.T) {
	toks := classifyAll(t, `... [[ ]] :: && -> << / >`)
	want := []string{"...", "[[", "]]", "::", "&&", "->", "<<", "/", ">"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Text, w)
		}
		if toks[i].Kind != Punct {
			t.Errorf("token %d kind = %v, want Punct", i, toks[i].Kind)
		}
	}
}

func TestClassifierNoDoubleRightShift(t *testing.T) {
	// ">>" must never be produced as a single token -- it lexes as two
	// adjoining ">" tokens so the parser can re-pair them for nested
	// template argument lists.
	toks := classifyAll(t, `>>`)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens for '>>', want 2: %+v", len(toks), toks)
	}
	for _, tok := range toks {
		if tok.Text != ">" {
			t.Errorf("token = %q, want '>'", tok.Text)
		}
	}
}

func TestClassifierKeywordVsIdentifier(t *testing.T) {
	toks := classifyAll(t, `class myClass __attribute__`)
	if toks[0].Kind != Keyword || toks[0].Text != "class" {
		t.Errorf("toks[0] = %+v, want Keyword 'class'", toks[0])
	}
	if toks[1].Kind != Name || toks[1].Text != "myClass" {
		t.Errorf("toks[1] = %+v, want Name 'myClass'", toks[1])
	}
	if toks[2].Kind != Keyword || toks[2].Text != "__attribute__" {
		t.Errorf("toks[2] = %+v, want Keyword '__attribute__'", toks[2])
	}
}

func TestClassifierNumericConstants(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"123", IntConstDec},
		{"0x1F", IntConstHex},
		{"0b101", IntConstBin},
		{"0755", IntConstOct},
		{"3.14", FloatConst},
		{"0x1p3", HexFloatConst},
	}
	for _, c := range cases {
		toks := classifyAll(t, c.src)
		if len(toks) != 1 {
			t.Fatalf("classify(%q): got %d tokens, want 1", c.src, len(toks))
		}
		if toks[0].Kind != c.kind {
			t.Errorf("classify(%q).Kind = %v, want %v", c.src, toks[0].Kind, c.kind)
		}
	}
}

func TestClassifierStringAndCharPrefixes(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{`"abc"`, StringLiteral},
		{`L"abc"`, WStringLiteral},
		{`u8"abc"`, U8StringLiteral},
		{`u"abc"`, U16StringLiteral},
		{`U"abc"`, U32StringLiteral},
		{`'a'`, CharConst},
		{`L'a'`, WCharConst},
		{`u8'a'`, U8CharConst},
		{`u'a'`, U16CharConst},
		{`U'a'`, U32CharConst},
	}
	for _, c := range cases {
		toks := classifyAll(t, c.src)
		if len(toks) != 1 {
			t.Fatalf("classify(%q): got %d tokens, want 1: %+v", c.src, len(toks), toks)
		}
		if toks[0].Kind != c.kind {
			t.Errorf("classify(%q).Kind = %v, want %v", c.src, toks[0].Kind, c.kind)
		}
	}
}

func TestClassifierPreprocessorLine(t *testing.T) {
	toks := classifyAll(t, "#include <foo.h>\nint x;")
	if toks[0].Kind != PrecompMacro {
		t.Fatalf("toks[0].Kind = %v, want PrecompMacro", toks[0].Kind)
	}
	if toks[0].Text != "#include <foo.h>" {
		t.Errorf("toks[0].Text = %q", toks[0].Text)
	}
}

func TestIsKeywordClosedSet(t *testing.T) {
	for _, kw := range []string{"__attribute__", "__declspec", "__cdecl", "__stdcall",
		"__fastcall", "__thiscall", "__vectorcall", "__clrcall", "nullptr_t",
		"__int8", "__int16", "__int32", "__int64", "concept"} {
		if !IsKeyword(kw) {
			t.Errorf("IsKeyword(%q) = false, want true", kw)
		}
	}
	if IsKeyword("notAKeyword") {
		t.Errorf("IsKeyword(notAKeyword) = true, want false")
	}
}
