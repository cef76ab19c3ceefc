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

package lexer

import (
	"testing"

	"github.com/robotpy/cxxheaderparser/token"
)

func TestLexerDiscardsNewlinesAndComments(t *testing.T) {
	l := New("f.h", "int // comment\nx;")
	var got []string
	for {
		tok, err := l.Token()
		if err != nil {
			if _, ok := err.(*ErrEOF); ok {
				break
			}
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, tok.Text)
	}
	want := []string{"int", "x", ";"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLexerReturnToken(t *testing.T) {
	l := New("f.h", "a b c")
	first, err := l.Token()
	if err != nil {
		t.Fatal(err)
	}
	l.ReturnToken(first)
	again, err := l.Token()
	if err != nil {
		t.Fatal(err)
	}
	if again.Text != first.Text {
		t.Errorf("after ReturnToken, got %q, want %q", again.Text, first.Text)
	}
	next, err := l.Token()
	if err != nil {
		t.Fatal(err)
	}
	if next.Text != "b" {
		t.Errorf("next token = %q, want b", next.Text)
	}
}

func TestLexerLineDirectiveRemapsLocation(t *testing.T) {
	l := New("f.h", "int a;\n#line 100 \"other.h\"\nint b;")

	var last token.Token
	for {
		tok, err := l.TokenEOFOK()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.IsEOF() {
			break
		}
		last = tok
	}
	if last.Text != ";" {
		t.Fatalf("last token = %q, want ';'", last.Text)
	}
	if last.Location.Filename != "other.h" {
		t.Errorf("Location.Filename = %q, want other.h", last.Location.Filename)
	}
	if last.Location.Line != 100 {
		t.Errorf("Location.Line = %d, want 100", last.Location.Line)
	}
}

func TestLexerDoxygenAccrualClearedByNewline(t *testing.T) {
	l := New("f.h", "/// a doc comment\nint x;\nint y;")

	// First statement picks up the preceding doc comment.
	doc := l.GetDoxygen()
	if doc != "/// a doc comment" {
		t.Errorf("first GetDoxygen() = %q", doc)
	}
	tok, err := l.Token()
	if err != nil || tok.Text != "int" {
		t.Fatalf("expected 'int', got %v err=%v", tok, err)
	}
	for tok.Text != ";" {
		tok, err = l.Token()
		if err != nil {
			t.Fatal(err)
		}
	}

	// Second statement has no preceding doc comment.
	doc = l.GetDoxygen()
	if doc != "" {
		t.Errorf("second GetDoxygen() = %q, want empty", doc)
	}
}

func TestLexerScopedSubstream(t *testing.T) {
	l := New("f.h", "int x;")

	toks := []token.Token{
		{Kind: token.Name, Text: "inner"},
	}
	l.PushTokenGroup(toks)

	tok, err := l.Token()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Text != "inner" {
		t.Errorf("got %q, want 'inner'", tok.Text)
	}

	_, err = l.Token()
	if _, ok := err.(ErrGroupExhausted); !ok {
		t.Fatalf("expected ErrGroupExhausted, got %v (%T)", err, err)
	}

	l.PopTokenGroup()

	tok, err = l.Token()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Text != "int" {
		t.Errorf("after PopTokenGroup, got %q, want 'int' (outer lookahead restored)", tok.Text)
	}
}
