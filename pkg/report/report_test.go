package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/vocabprep/pkg/cleanup"
	"github.com/japaniel/vocabprep/pkg/vocab"
)

func sampleStats() *Stats {
	s := NewStats()
	s.SetLesson(1, []vocab.Entry{
		{Kana: "はじめまして", Meaning: "初次见面", Category: "寒暄语", WordType: vocab.Greeting},
		{Kana: "わたし", Meaning: "我", Category: "代词", WordType: vocab.Pronoun},
		{Kana: "あなた", Meaning: "你", Category: "代词", WordType: vocab.Pronoun},
		{Kana: "テレビ", Meaning: "电视", Category: "电子产品", WordType: vocab.Loanword},
	})
	s.SetLesson(5, []vocab.Entry{
		{Kana: "いく", Meaning: "去", Category: "动词", WordType: vocab.Godan},
		{Kana: "きのう", Meaning: "昨天", Category: "时间日期", WordType: vocab.TimeWord},
		{Kana: "おととい", Meaning: "前天", Category: "补充词汇", WordType: vocab.Noun},
		{Kana: "ざっし", Meaning: "杂志"},
	})
	return s
}

func TestStatsCounts(t *testing.T) {
	s := sampleStats()
	assert.Equal(t, []int{1, 5}, s.Lessons())
	assert.Equal(t, 8, s.Total())

	cats := s.CategoryCounts()
	assert.Equal(t, 2, cats["代词"])
	assert.Equal(t, 1, cats[Unclassified])

	types := s.TypeCounts()
	assert.Equal(t, 2, types[string(vocab.Pronoun)])
	assert.Equal(t, 1, types[Unclassified])
}

func TestSetLessonCopies(t *testing.T) {
	s := NewStats()
	entries := []vocab.Entry{{Kana: "あ", Category: "x"}}
	s.SetLesson(1, entries)
	entries[0].Category = "y"
	assert.Equal(t, "x", s.Entries(1)[0].Category)
}

func TestByCount(t *testing.T) {
	got := ByCount(map[string]int{"b": 2, "a": 2, "c": 5})
	assert.Equal(t, []Count{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}

func TestCategory(t *testing.T) {
	out := Category(sampleStats())
	assert.True(t, strings.HasPrefix(out, "词汇分类统计报告\n"))
	// Totals come before the per-lesson section and are ordered by count.
	assert.Less(t, strings.Index(out, "  代词: 2 个"), strings.Index(out, "各课程分类分布"))
	assert.Contains(t, out, "\n第 5 课:\n")
}

func TestAnalysis(t *testing.T) {
	out := Analysis(sampleStats())
	assert.Contains(t, out, "总词汇量: 8 个单词")
	assert.Contains(t, out, "课程数量: 2 课")
	assert.Contains(t, out, "代词: 2 个 (25.0%)")
	assert.Contains(t, out, "总共找到 1 个外来词")
	assert.Contains(t, out, "第 1课: テレビ (电视)")
	assert.Contains(t, out, "动词(1型): 1 个")
	assert.Contains(t, out, "动词(2型): 0 个")
	assert.Contains(t, out, "第 1课: はじめまして (初次见面)")
}

func TestAnalysisTruncatesLoanwords(t *testing.T) {
	s := NewStats()
	var entries []vocab.Entry
	for i := 0; i < 23; i++ {
		entries = append(entries, vocab.Entry{Kana: "カ", WordType: vocab.Loanword})
	}
	s.SetLesson(2, entries)
	assert.Contains(t, Analysis(s), "... 还有 3 个外来词")
}

func TestSummary(t *testing.T) {
	out := Summary(sampleStats())
	assert.Contains(t, out, "    1. 代词: 2 个")
	assert.Contains(t, out, "第  1 课: 1 个寒暄语")
	assert.Contains(t, out, "- はじめまして (初次见面)")
	assert.Contains(t, out, "总计: 1 个寒暄语")
	assert.Contains(t, out, "电子产品: 1 个")
	assert.Contains(t, out, "时间日期词汇: 1 个")
	assert.Contains(t, out, "- きのう(昨天)")
	assert.Contains(t, out, "第 5 课主要分类:")
	assert.NotContains(t, out, "第 2 课主要分类:")
	assert.Contains(t, out, "已分类词汇: 7 个")
	assert.Contains(t, out, "分类完成率: 87.5%")
}

func TestFinal(t *testing.T) {
	out := Final(sampleStats())
	assert.Contains(t, out, "第 1 课详细分类:")
	assert.Contains(t, out, "第 5 课详细分类:")
	assert.NotContains(t, out, "第 2 课详细分类:")
	assert.Contains(t, out, "寒暄语分布:\n  第 1 课: 1 个寒暄语\n")
	assert.NotContains(t, out, "数据库分类统计")

	s := sampleStats()
	s.Stored = map[string]int{"名词": 3, "": 1}
	out = Final(s)
	assert.Contains(t, out, "数据库分类统计:\n  名词: 3 个\n  (未分类): 1 个\n")
}

func TestCleanupAndVerification(t *testing.T) {
	entries := []vocab.Entry{
		{Kana: "…ご（さん）", Kanji: "…語", Meaning: "语"},
		{Kana: "ほん", Kanji: "本", Meaning: "书"},
	}
	s := NewStats()
	s.Changes = append(s.Changes, FileChanges{File: "lesson_01_vocabulary.csv", Changes: cleanup.Lesson(entries)})
	s.Checks = append(s.Checks, FileCheck{File: "lesson_01_vocabulary.csv", Result: cleanup.Verify(entries)})

	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "词汇清理报告_20240301_090507.txt", CleanupFile(at))

	out := Cleanup(s, at)
	assert.Contains(t, out, "清理时间: 2024-03-01 09:05:07")
	assert.Contains(t, out, "清理词汇数: 1")
	assert.Contains(t, out, "第1行:\n  原始: …ご（さん）\n  清理: ご|さん\n  可接受答案: ご, さん\n")

	v := Verification(s)
	assert.Contains(t, v, "所有有问题的假名读音均已清理完毕")
	assert.Contains(t, v, "假名变体: ご | さん")
	assert.Contains(t, v, "汉字中包含省略号的条目 (1 个)")
}

func TestAudit(t *testing.T) {
	s := NewStats()
	s.Audited = 10
	s.Mismatches = []Mismatch{{
		Lesson: 3, Row: 4, Kana: "かえる", Kanji: "帰る", Meaning: "回去",
		Stored: vocab.Ichidan, Rule: "ru-ending",
		Dictionary: []vocab.WordType{vocab.Godan}, Morph: "動詞",
		Reading: "かえる", Glosses: []string{"to return", "to go home"},
	}}
	out := Audit(s)
	assert.Contains(t, out, "核对词汇数: 10")
	assert.Contains(t, out, "词性不一致: 1")
	assert.Contains(t, out, "第3课 第4行: かえる [帰る] (回去)")
	assert.Contains(t, out, "当前词性: 动词(2型) (规则 ru-ending)")
	assert.Contains(t, out, "词典词性: 动词(1型)")
	assert.Contains(t, out, "形态分析: 動詞")
	assert.Contains(t, out, "词典释义: to return; to go home")
	assert.NotContains(t, out, "分析读音", "reading equal to the kana is not repeated")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := WriteFile(dir, FinalFile, "内容")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FinalFile), path)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "内容", string(got))
}
