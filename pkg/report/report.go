package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/japaniel/vocabprep/pkg/category"
	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Report file names.
const (
	CategoryFile     = "分类统计报告.txt"
	AnalysisFile     = "词汇分析报告.txt"
	SummaryFile      = "分类总结报告.txt"
	FinalFile        = "最终分类报告.txt"
	VerificationFile = "词汇清理验证报告.txt"
	AuditFile        = "词性核对报告.txt"
)

// CleanupFile names the cleanup report of a run started at t.
func CleanupFile(t time.Time) string {
	return "词汇清理报告_" + t.Format("20060102_150405") + ".txt"
}

// WriteFile writes content to dir/name, creating dir.
func WriteFile(dir, name, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	return path, nil
}

func title(b *strings.Builder, text string, width int) {
	b.WriteString(text + "\n")
	b.WriteString(strings.Repeat("=", width) + "\n\n")
}

// Category lists category totals and the per-lesson distribution.
func Category(s *Stats) string {
	var b strings.Builder
	title(&b, "词汇分类统计报告", 40)

	b.WriteString("总体分类统计:\n")
	for _, c := range ByCount(s.CategoryCounts()) {
		fmt.Fprintf(&b, "  %s: %d 个\n", c.Label, c.N)
	}

	b.WriteString("\n各课程分类分布:\n")
	for _, n := range s.Lessons() {
		fmt.Fprintf(&b, "\n第 %d 课:\n", n)
		for _, c := range ByLabel(s.LessonCategoryCounts(n)) {
			fmt.Fprintf(&b, "  %s: %d 个\n", c.Label, c.N)
		}
	}
	return b.String()
}

// maxLoanwords bounds the loanword listing of the analysis report.
const maxLoanwords = 20

// Analysis describes the word-type distribution.
func Analysis(s *Stats) string {
	var b strings.Builder
	title(&b, "《大家的日语》词汇分析报告", 50)

	total := s.Total()
	lessons := s.Lessons()
	fmt.Fprintf(&b, "总词汇量: %d 个单词\n", total)
	fmt.Fprintf(&b, "课程数量: %d 课\n", len(lessons))

	types := s.TypeCounts()
	b.WriteString("\n词性分布:\n")
	for _, c := range ByCount(types) {
		fmt.Fprintf(&b, "  %s: %d 个 (%.1f%%)\n", c.Label, c.N, percent(c.N, total))
	}

	b.WriteString("\n各课程词汇量:\n")
	for _, n := range lessons {
		fmt.Fprintf(&b, "  第 %2d 课: %2d 个单词\n", n, len(s.Entries(n)))
	}

	var loanwords, greetings []string
	for _, n := range lessons {
		for _, e := range s.Entries(n) {
			switch e.WordType {
			case vocab.Loanword:
				loanwords = append(loanwords, fmt.Sprintf("第%2d课: %s (%s)", n, e.Kana, e.Meaning))
			case vocab.Greeting:
				greetings = append(greetings, fmt.Sprintf("第%2d课: %s (%s)", n, e.Kana, e.Meaning))
			}
		}
	}

	b.WriteString("\n外来词详细统计:\n")
	fmt.Fprintf(&b, "  总共找到 %d 个外来词\n", len(loanwords))
	for i, line := range loanwords {
		if i == maxLoanwords {
			fmt.Fprintf(&b, "    ... 还有 %d 个外来词\n", len(loanwords)-maxLoanwords)
			break
		}
		b.WriteString("    " + line + "\n")
	}

	b.WriteString("\n动词统计:\n")
	for _, t := range []vocab.WordType{vocab.Godan, vocab.Ichidan, vocab.Irregular} {
		fmt.Fprintf(&b, "  %s: %d 个\n", t, types[string(t)])
	}

	b.WriteString("\n寒暄语统计:\n")
	fmt.Fprintf(&b, "  总共找到 %d 个寒暄语\n", len(greetings))
	for _, line := range greetings {
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// Categories and lessons singled out by the summary reports.
var (
	itemCategories = []string{"学习用品", "电子产品", "日用品", "食物饮品", "服装用品"}
	summaryLessons = []int{1, 2, 3, 5}
	finalLessons   = []int{1, 2, 5}
)

const (
	timeCategory       = "时间日期"
	timeCategoryLesson = 5
	summaryTop         = 20
	summaryTimeWords   = 10
	summaryLessonTop   = 5
)

// Summary is the classification summary: top categories, greeting
// distribution, item categories, lesson 5 time words, lesson overviews and
// the completion rate.
func Summary(s *Stats) string {
	var b strings.Builder
	title(&b, "词汇分类总结报告", 50)

	counts := s.CategoryCounts()
	b.WriteString("1. 总体分类统计 (前20个):\n")
	for i, c := range ByCount(counts) {
		if i == summaryTop {
			break
		}
		fmt.Fprintf(&b, "   %2d. %s: %d 个\n", i+1, c.Label, c.N)
	}

	b.WriteString("\n2. 寒暄语分布情况:\n")
	totalGreetings := 0
	for _, n := range s.Lessons() {
		var lines []string
		for _, e := range s.Entries(n) {
			if e.Category == category.Greeting {
				lines = append(lines, fmt.Sprintf("      - %s (%s)\n", e.Kana, e.Meaning))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "   第 %2d 课: %d 个寒暄语\n", n, len(lines))
		for _, l := range lines {
			b.WriteString(l)
		}
		totalGreetings += len(lines)
	}
	fmt.Fprintf(&b, "   总计: %d 个寒暄语\n", totalGreetings)

	b.WriteString("\n3. 物品分类统计:\n")
	for _, c := range itemCategories {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(&b, "   %s: %d 个\n", c, n)
		}
	}

	b.WriteString("\n4. 第五课时间日期分类:\n")
	if n := s.LessonCategoryCounts(timeCategoryLesson)[timeCategory]; n > 0 {
		fmt.Fprintf(&b, "   时间日期词汇: %d 个\n", n)
		b.WriteString("   具体词汇:\n")
		shown := 0
		for _, e := range s.Entries(timeCategoryLesson) {
			if e.Category != timeCategory {
				continue
			}
			if shown == summaryTimeWords {
				break
			}
			fmt.Fprintf(&b, "      - %s(%s)\n", e.Kana, e.Meaning)
			shown++
		}
	}

	b.WriteString("\n5. 重要课程分类概览:\n")
	for _, n := range summaryLessons {
		if len(s.Entries(n)) == 0 {
			continue
		}
		fmt.Fprintf(&b, "   第 %d 课主要分类:\n", n)
		for i, c := range ByCount(s.LessonCategoryCounts(n)) {
			if i == summaryLessonTop {
				break
			}
			fmt.Fprintf(&b, "      - %s: %d 个\n", c.Label, c.N)
		}
	}

	total := s.Total()
	classified := total - counts[vocab.SupplementCategory]
	b.WriteString("\n6. 分类完成情况:\n")
	fmt.Fprintf(&b, "   总词汇量: %d 个\n", total)
	fmt.Fprintf(&b, "   已分类词汇: %d 个\n", classified)
	fmt.Fprintf(&b, "   分类完成率: %.1f%%\n", percent(classified, total))
	return b.String()
}

// Final is the final classification report: overall counts, the detail of
// lessons 1, 2 and 5, and the greeting count per lesson.
func Final(s *Stats) string {
	var b strings.Builder
	title(&b, "词汇最终分类报告", 50)

	b.WriteString("总体分类统计:\n")
	for _, c := range ByCount(s.CategoryCounts()) {
		fmt.Fprintf(&b, "  %s: %d 个\n", c.Label, c.N)
	}

	for _, n := range finalLessons {
		if len(s.Entries(n)) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n第 %d 课详细分类:\n", n)
		for _, c := range ByLabel(s.LessonCategoryCounts(n)) {
			fmt.Fprintf(&b, "  %s: %d 个\n", c.Label, c.N)
		}
	}

	b.WriteString("\n寒暄语分布:\n")
	for _, n := range s.Lessons() {
		if g := s.LessonCategoryCounts(n)[category.Greeting]; g > 0 {
			fmt.Fprintf(&b, "  第 %d 课: %d 个寒暄语\n", n, g)
		}
	}

	if s.Stored != nil {
		b.WriteString("\n数据库分类统计:\n")
		for _, c := range ByCount(s.Stored) {
			label := c.Label
			if label == "" {
				label = "(未分类)"
			}
			fmt.Fprintf(&b, "  %s: %d 个\n", label, c.N)
		}
	}
	return b.String()
}

// Cleanup lists every kana rewrite of the run.
func Cleanup(s *Stats, at time.Time) string {
	var b strings.Builder
	b.WriteString("词汇清理报告\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")

	total := 0
	for _, fc := range s.Changes {
		total += len(fc.Changes)
	}
	fmt.Fprintf(&b, "清理时间: %s\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "处理文件数: %d\n", len(s.Changes))
	fmt.Fprintf(&b, "清理词汇数: %d\n\n", total)

	for _, fc := range s.Changes {
		fmt.Fprintf(&b, "\n文件: %s\n", fc.File)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, c := range fc.Changes {
			fmt.Fprintf(&b, "第%d行:\n", c.Row)
			fmt.Fprintf(&b, "  原始: %s\n", c.Original)
			fmt.Fprintf(&b, "  清理: %s\n", c.Cleaned)
			if c.MultiAnswer() {
				fmt.Fprintf(&b, "  可接受答案: %s\n", strings.Join(c.Variants, ", "))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Verification lists residual notation and multi-answer entries found after
// cleanup.
func Verification(s *Stats) string {
	var b strings.Builder
	title(&b, "词汇清理验证报告", 50)

	var residual, multi int
	for _, fc := range s.Checks {
		residual += len(fc.Result.Residual)
		multi += len(fc.Result.MultiAnswer)
	}

	if residual > 0 {
		fmt.Fprintf(&b, "未完全清理的条目 (%d 个):\n", residual)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, fc := range s.Checks {
			for _, f := range fc.Result.Residual {
				fmt.Fprintf(&b, "%s 第%d行:\n", fc.File, f.Row)
				fmt.Fprintf(&b, "  假名: %s\n", f.Kana)
				fmt.Fprintf(&b, "  汉字: %s\n", f.Kanji)
				fmt.Fprintf(&b, "  释义: %s\n", f.Meaning)
				b.WriteString("  问题: 假名中仍包含省略号或括号\n\n")
			}
		}
	} else {
		b.WriteString("所有有问题的假名读音均已清理完毕\n\n")
	}

	if multi > 0 {
		fmt.Fprintf(&b, "支持多答案的条目 (%d 个):\n", multi)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, fc := range s.Checks {
			for _, f := range fc.Result.MultiAnswer {
				fmt.Fprintf(&b, "%s 第%d行:\n", fc.File, f.Row)
				fmt.Fprintf(&b, "  假名变体: %s\n", strings.Join(f.Variants, " | "))
				fmt.Fprintf(&b, "  汉字: %s\n", f.Kanji)
				fmt.Fprintf(&b, "  释义: %s\n\n", f.Meaning)
			}
		}
	}

	var notes int
	for _, fc := range s.Checks {
		notes += len(fc.Result.KanjiEllipsis)
	}
	if notes > 0 {
		fmt.Fprintf(&b, "汉字中包含省略号的条目 (%d 个):\n", notes)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, fc := range s.Checks {
			for _, f := range fc.Result.KanjiEllipsis {
				fmt.Fprintf(&b, "%s 第%d行: %s\n", fc.File, f.Row, f.Kanji)
			}
		}
	}
	return b.String()
}

// Audit lists the entries whose stored word type disagrees with the
// dictionary.
func Audit(s *Stats) string {
	var b strings.Builder
	title(&b, "词性核对报告", 50)

	fmt.Fprintf(&b, "核对词汇数: %d\n", s.Audited)
	fmt.Fprintf(&b, "词性不一致: %d\n", len(s.Mismatches))

	for _, m := range s.Mismatches {
		fmt.Fprintf(&b, "\n第%d课 第%d行: %s", m.Lesson, m.Row, m.Kana)
		if m.Kanji != "" && m.Kanji != m.Kana {
			fmt.Fprintf(&b, " [%s]", m.Kanji)
		}
		fmt.Fprintf(&b, " (%s)\n", m.Meaning)
		fmt.Fprintf(&b, "  当前词性: %s (规则 %s)\n", m.Stored, m.Rule)
		if len(m.Dictionary) > 0 {
			labels := make([]string, len(m.Dictionary))
			for i, t := range m.Dictionary {
				labels[i] = string(t)
			}
			fmt.Fprintf(&b, "  词典词性: %s\n", strings.Join(labels, ", "))
		}
		if m.Morph != "" {
			fmt.Fprintf(&b, "  形态分析: %s\n", m.Morph)
		}
		if m.Reading != "" && m.Reading != m.Kana {
			fmt.Fprintf(&b, "  分析读音: %s\n", m.Reading)
		}
		if len(m.Glosses) > 0 {
			fmt.Fprintf(&b, "  词典释义: %s\n", strings.Join(m.Glosses, "; "))
		}
	}
	return b.String()
}
