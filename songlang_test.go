package songlang

import "testing"

func TestRunCollectsOutputAndInvokesCallback(t *testing.T) {
	var callback []string
	_, lines, err := Run("Player HAS HP 100\nPlayer PRINT", func(line string) {
		callback = append(callback, line)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(lines) != 1 || lines[0] != "Player" {
		t.Errorf("expected [Player], got %v", lines)
	}
	if len(callback) != 1 || callback[0] != "Player" {
		t.Errorf("expected the callback to see the same line, got %v", callback)
	}
}

func TestRunPropagatesTokenizeError(t *testing.T) {
	if _, _, err := Run("Player HAS \"unterminated", nil); err == nil {
		t.Fatal("expected a tokenize error")
	}
}

func TestRunPropagatesRuntimeError(t *testing.T) {
	if _, _, err := Run("Player.Missing PRINT", nil); err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestTokenizeAndParseWireThroughToInterpreter(t *testing.T) {
	tokens, err := Tokenize("Player PRINT")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	stmts, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var lines []string
	it := NewInterpreter(WithOutput(func(line string) { lines = append(lines, line) }))
	it.Graph.GetOrCreateNode("Player")
	if err := it.Execute(stmts); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(lines) != 1 || lines[0] != "Player" {
		t.Errorf("expected [Player], got %v", lines)
	}
}

func TestWithGraphSharesCallerProvidedGraph(t *testing.T) {
	g := NewInterpreter().Graph
	g.GetOrCreateNode("Player")

	it := NewInterpreter(WithGraph(g))
	if it.Graph != g {
		t.Fatal("expected WithGraph to install the provided graph instance")
	}
	if !it.Graph.HasNode("Player") {
		t.Error("expected the shared graph's pre-existing node to be visible")
	}
}
