package lesson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

const standardCSV = "课程,栏目,假名,汉字,释义,词性\n" +
	"第2课,学习用品,ほん,本,书,名词\n" +
	"第2课,补充词汇,…ふん（…ぷん）,…分,分钟,时间词\n"

func TestParse_Standard(t *testing.T) {
	tbl, err := Parse([]byte("\xef\xbb\xbf" + standardCSV))
	require.NoError(t, err)
	assert.Equal(t, Standard, tbl.Layout)
	assert.Equal(t, "utf-8", tbl.Encoding)
	require.Len(t, tbl.Entries, 2)

	e := tbl.Entries[0]
	assert.Equal(t, 2, e.Lesson)
	assert.Equal(t, "第2课", e.LessonLabel)
	assert.Equal(t, "学习用品", e.Category)
	assert.Equal(t, "ほん", e.Kana)
	assert.Equal(t, "本", e.Kanji)
	assert.Equal(t, vocab.Noun, e.WordType)
	assert.Equal(t, "…ふん（…ぷん）", tbl.Entries[1].Kana)
}

func TestParse_Extended(t *testing.T) {
	raw := "kana,kanji,meaning,type,romaji,accent\n" +
		"たべる,食べる,吃,type-2 verb,taberu,2\n" +
		"\n" +
		"テレビ,,电视,外来词,terebi\n"
	tbl, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, Extended, tbl.Layout)
	require.Len(t, tbl.Entries, 2, "blank rows are skipped")
	assert.Equal(t, vocab.Ichidan, tbl.Entries[0].WordType)
	assert.Equal(t, "2", tbl.Entries[0].Accent)
	assert.Equal(t, "", tbl.Entries[1].Accent, "short rows are padded")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = Parse([]byte("a,b,c\n1,2,3\n"))
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestParse_GBK(t *testing.T) {
	raw, err := simplifiedchinese.GBK.NewEncoder().String(standardCSV)
	require.NoError(t, err)

	tbl, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "gbk", tbl.Encoding)
	require.Len(t, tbl.Entries, 2)
	assert.Equal(t, "书", tbl.Entries[0].Meaning)
	assert.Equal(t, "ほん", tbl.Entries[0].Kana)
}

func TestParse_ShiftJIS(t *testing.T) {
	raw, err := japanese.ShiftJIS.NewEncoder().String("kana,kanji,meaning,type,romaji,accent\nかさ,傘,umbrella,,kasa,1\n")
	require.NoError(t, err)

	tbl, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "shift_jis", tbl.Encoding)
	require.Len(t, tbl.Entries, 1)
	assert.Equal(t, "かさ", tbl.Entries[0].Kana)
	assert.Equal(t, "傘", tbl.Entries[0].Kanji)
}

func TestWriteRead_PreservesLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	in := &Table{Layout: Extended, Entries: []vocab.Entry{
		{Kana: "ふん|ぷん", Kanji: "…分", Meaning: "分, 分钟", WordType: vocab.TimeWord, Romaji: "fun", Accent: "1"},
	}}
	require.NoError(t, Write(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "kana,kanji,meaning,type,romaji,accent\n")
	assert.Contains(t, string(raw), `"分, 分钟"`)

	out, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, Extended, out.Layout)
	assert.Equal(t, in.Entries[0].Kana, out.Entries[0].Kana)
	assert.Equal(t, in.Entries[0].Meaning, out.Entries[0].Meaning)
}

func TestEncode_FillsLessonLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	require.NoError(t, Write(path, &Table{Entries: []vocab.Entry{{Lesson: 7, Kana: "はし"}}}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "第7课,,はし,,,\n")
}

func TestParseLessonLabel(t *testing.T) {
	n, ok := ParseLessonLabel("第12课")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	_, ok = ParseLessonLabel("lesson 12")
	assert.False(t, ok)
}
