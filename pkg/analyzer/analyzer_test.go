package analyzer

import (
	"testing"
)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("Failed to create analyzer: %v", err)
	}
	return a
}

func TestAnalyze(t *testing.T) {
	a := newAnalyzer(t)

	tokens := a.Analyze("私は学生です")
	if len(tokens) == 0 {
		t.Fatal("No tokens found")
	}
	if tokens[0].Surface != "私" {
		t.Errorf("first surface = %q, want 私", tokens[0].Surface)
	}
	for _, tok := range tokens {
		if len(tok.PartsOfSpeech) > 0 && tok.PrimaryPOS != tok.PartsOfSpeech[0] {
			t.Errorf("PrimaryPOS %q does not match PartsOfSpeech[0] %q", tok.PrimaryPOS, tok.PartsOfSpeech[0])
		}
	}
}

func TestAnalyze_BaseForm(t *testing.T) {
	a := newAnalyzer(t)
	tokens := a.Analyze("行きます")
	if len(tokens) == 0 {
		t.Fatal("No tokens found")
	}
	if tokens[0].BaseForm != "行く" {
		t.Errorf("base form = %q, want 行く", tokens[0].BaseForm)
	}
	if tokens[0].PrimaryPOS != "動詞" {
		t.Errorf("POS = %q, want 動詞", tokens[0].PrimaryPOS)
	}
}

func TestReading(t *testing.T) {
	a := newAnalyzer(t)
	tests := []struct {
		in, want string
	}{
		{"学生", "がくせい"},
		{"食べる", "たべる"},
		{"テレビ", "てれび"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := a.Reading(tt.in); got != tt.want {
			t.Errorf("Reading(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrimaryPOS(t *testing.T) {
	a := newAnalyzer(t)
	tests := []struct {
		in, want string
	}{
		{"高い", "形容詞"},
		{"食べる", "動詞"},
		{"机", "名詞"},
		{"…分", "名詞"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := a.PrimaryPOS(tt.in); got != tt.want {
			t.Errorf("PrimaryPOS(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestToHiragana(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"ア", "あ"},
		{"ガ", "が"},
		{"パ", "ぱ"},
		{"ン", "ん"},
		{"ー", "ー"},
		{"abc", "abc"},
		{"あいう", "あいう"},
	}
	for _, tt := range tests {
		if got := ToHiragana(tt.in); got != tt.out {
			t.Errorf("ToHiragana(%q) = %q; want %q", tt.in, got, tt.out)
		}
	}
}

func TestSanitizeRuby(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple Ruby",
			input:    "<ruby>漢字<rt>かんじ</rt></ruby>",
			expected: "<ruby>漢字</ruby>",
		},
		{
			name:     "Ruby with RP",
			input:    "<ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>",
			expected: "<ruby>漢字</ruby>",
		},
		{
			name:     "Table cell",
			input:    "<td><ruby>私<rt>わたし</rt></ruby></td><td>わたし</td>",
			expected: "<td><ruby>私</ruby></td><td>わたし</td>",
		},
		{
			name:     "Attributes in tags",
			input:    "<ruby class='test'>漢字<rt class='reading'>かんじ</rt></ruby>",
			expected: "<ruby class='test'>漢字</ruby>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeRuby([]byte(tt.input))
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}
