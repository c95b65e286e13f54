package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	p := &CommonMarkPreprocessor{}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unchanged", "# A\n\nB\n", "# A\n\nB\n"},
		{"CRLF normalized", "# A\r\n\r\nB\r\n", "# A\n\nB\n"},
		{"lone CR normalized", "A\rB", "A\nB"},
		{"blank lines compressed", "A\n\n\n\n\nB", "A\n\nB"},
		{"trailing spaces removed", "A  \nB\t\n", "A\nB\n"},
		{"leading blank lines trimmed", "\n\n\n# A\n", "# A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocessMarkdown_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "A\r\n\r\n\r\n\r\nB"
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("cancelled context should return content unchanged, got %q", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Ahmed Nasr", "Ahmed Nasr"},
		{"parentheses kept", "PMO (Acting)", "PMO (Acting)"},
		{"emphasis", "*bold* and _it_", `\*bold\* and \_it\_`},
		{"snake case", "snake_case", `snake\_case`},
		{"pipe", "Cairo | Remote", `Cairo \| Remote`},
		{"html", "<script>", `\<script\>`},
		{"ampersand", "R&D", `R\&D`},
		{"link syntax", "[x](y)", `\[x\](y)`},
		{"backslash", `C:\dir`, `C:\\dir`},
		{"backtick", "`code`", "\\`code\\`"},
		{"strikethrough", "~~old~~", `\~\~old\~\~`},
		{"heading marker", "# not heading", `\# not heading`},
		{"dash list marker", "- dash", `\- dash`},
		{"plus list marker", "+40% revenue", `\+40% revenue`},
		{"ordered list marker", "2020. A year", `2020\. A year`},
		{"paren list marker", "1) first", `1\) first`},
		{"digits without marker", "2020 - 2024", "2020 - 2024"},
		{"inner dash kept", "Jan 2020 - Present", "Jan 2020 - Present"},
		{"newlines collapsed", "line one\n\nline two", "line one line two"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EscapeMarkdown(tt.input); got != tt.want {
				t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeMarkdown_RendersLiterally(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()
	inputs := []string{
		"*bold*",
		"# heading",
		"- item",
		"1. first",
		"<b>tag</b>",
		"a | b",
		"under_score",
	}

	for _, in := range inputs {
		html, err := conv.ToHTML(context.Background(), Document{Title: "t"}, EscapeMarkdown(in))
		if err != nil {
			t.Fatalf("ToHTML(%q) error = %v", in, err)
		}
		for _, tag := range []string{"<strong>", "<em>", "<h1", "<ul>", "<ol>", "<b>"} {
			if strings.Contains(html, tag) {
				t.Errorf("EscapeMarkdown(%q) rendered markup %s:\n%s", in, tag, html)
			}
		}
	}
}
