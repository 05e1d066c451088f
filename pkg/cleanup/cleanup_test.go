package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

func TestVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"…ふん（…ぷん）", []string{"ふん", "ぷん"}},
		{"...ふん(...ぷん)", []string{"ふん", "ぷん"}},
		{"…じん", []string{"じん"}},
		{"…がつ", []string{"がつ"}},
		{"かさ", []string{"かさ"}},
		{" ふん （ ぷん ） ", []string{"ふん", "ぷん"}},
		{"…えん（…えん）", []string{"えん"}},
		{"（ぷん）", []string{"ぷん"}},
		{"ふん（ぷん", []string{"ふんぷん"}},
		{"", []string{""}},
		{"…", []string{""}},
		{"（）", []string{""}},
		{"...（...）", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Variants(tt.in))
		})
	}
}

func TestKana(t *testing.T) {
	got, changed := Kana("…ふん（…ぷん）")
	assert.True(t, changed)
	assert.Equal(t, "ふん|ぷん", got)

	got, changed = Kana("かさ")
	assert.False(t, changed)
	assert.Equal(t, "かさ", got)

	got, changed = Kana("ふん|ぷん")
	assert.False(t, changed, "cleaned fields are stable")
	assert.Equal(t, "ふん|ぷん", got)

	for _, m := range markers {
		assert.NotContains(t, got, m)
	}

	for _, in := range []string{"…", "（）", "...（...）"} {
		got, changed = Kana(in)
		assert.False(t, changed, "notation-only kana %q", in)
		assert.Equal(t, in, got)
	}
}

func TestAccepts(t *testing.T) {
	field, _ := Kana("…ふん（…ぷん）")
	assert.True(t, Accepts(field, "ふん"))
	assert.True(t, Accepts(field, " ぷん "))
	assert.False(t, Accepts(field, "ふ"))
	assert.True(t, Accepts("Kyou|KONNICHIWA", "konnichiwa"))
	assert.True(t, Accepts("かさ", "かさ"))
}

func TestLesson(t *testing.T) {
	entries := []vocab.Entry{
		{Kana: "かさ", Kanji: "傘"},
		{Kana: "…ふん（…ぷん）", Kanji: "…分"},
		{Kana: "…じん", Kanji: "…人"},
	}
	changes := Lesson(entries)
	require.Len(t, changes, 2)

	assert.Equal(t, 2, changes[0].Row)
	assert.Equal(t, "…ふん（…ぷん）", changes[0].Original)
	assert.Equal(t, "ふん|ぷん", changes[0].Cleaned)
	assert.True(t, changes[0].MultiAnswer())
	assert.Equal(t, 3, changes[1].Row)
	assert.False(t, changes[1].MultiAnswer())

	assert.Equal(t, "ふん|ぷん", entries[1].Kana)
	assert.Equal(t, "じん", entries[2].Kana)
	assert.Equal(t, "…分", entries[1].Kanji, "kanji is left alone")

	assert.Empty(t, Lesson(entries), "second pass finds nothing")
}

func TestLesson_NotationOnlyKanaKept(t *testing.T) {
	entries := []vocab.Entry{
		{Kana: "…", Meaning: "省略"},
		{Kana: "（）"},
		{Kana: "...（...）"},
		{Kana: "…じん", Kanji: "…人"},
	}
	changes := Lesson(entries)
	require.Len(t, changes, 1)
	assert.Equal(t, 4, changes[0].Row)

	assert.Equal(t, "…", entries[0].Kana)
	assert.Equal(t, "（）", entries[1].Kana)
	assert.Equal(t, "...（...）", entries[2].Kana)

	v := Verify(entries)
	require.Len(t, v.Residual, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{v.Residual[0].Row, v.Residual[1].Row, v.Residual[2].Row})
}

func TestVerify(t *testing.T) {
	entries := []vocab.Entry{
		{Kana: "ふん|ぷん", Kanji: "…分", Meaning: "分"},
		{Kana: "…ばん（…ばん）", Meaning: "号"},
		{Kana: "かさ"},
	}
	v := Verify(entries)
	assert.False(t, v.OK())
	require.Len(t, v.Residual, 1)
	assert.Equal(t, 2, v.Residual[0].Row)
	require.Len(t, v.MultiAnswer, 1)
	assert.Equal(t, []string{"ふん", "ぷん"}, v.MultiAnswer[0].Variants)
	require.Len(t, v.KanjiEllipsis, 1)

	Lesson(entries)
	assert.True(t, Verify(entries).OK())
}
