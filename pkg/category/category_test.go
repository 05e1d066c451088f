package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

func TestAssign(t *testing.T) {
	tests := []struct {
		name   string
		lesson int
		entry  vocab.Entry
		want   string
		by     Decision
	}{
		{
			name:   "pin beats lesson rule",
			lesson: 1,
			entry:  vocab.Entry{Kana: "あの人", Kanji: "あの人", Meaning: "那个人", WordType: vocab.Pronoun},
			want:   "代词",
			by:     ByPin,
		},
		{
			name:   "pin is lesson scoped",
			lesson: 5,
			entry:  vocab.Entry{Kana: "にほん", Kanji: "日本", Meaning: "日本"},
			want:   "国家城市",
			by:     ByPin,
		},
		{
			name:   "greeting word type overrides lesson rule",
			lesson: 2,
			entry:  vocab.Entry{Kana: "ほんとうに", Meaning: "真的", WordType: vocab.Greeting},
			want:   Greeting,
			by:     ByGreeting,
		},
		{
			name:   "greeting meaning keyword",
			lesson: 7,
			entry:  vocab.Entry{Kana: "いらっしゃいませ", Meaning: "欢迎光临", WordType: vocab.Noun},
			want:   Greeting,
			by:     ByGreeting,
		},
		{
			name:   "lesson rule on kana",
			lesson: 2,
			entry:  vocab.Entry{Kana: "ほん", Kanji: "本", Meaning: "书", WordType: vocab.Noun},
			want:   "学习用品",
			by:     ByLesson,
		},
		{
			name:   "lesson rule on meaning",
			lesson: 3,
			entry:  vocab.Entry{Kana: "おてあらい", Kanji: "お手洗い", Meaning: "厕所", WordType: vocab.IAdjective},
			want:   "场所地点",
			by:     ByLesson,
		},
		{
			name:   "earlier lesson rule wins",
			lesson: 5,
			entry:  vocab.Entry{Kana: "きます", Kanji: "来ます", Meaning: "来", WordType: vocab.Godan},
			want:   "移动动词",
			by:     ByLesson,
		},
		{
			name:   "global rule outside the lesson tables",
			lesson: 11,
			entry:  vocab.Entry{Kana: "ふたつ", Kanji: "二つ", Meaning: "两个", WordType: vocab.Godan},
			want:   "数量词",
			by:     ByGlobal,
		},
		{
			name:   "global time rule",
			lesson: 4,
			entry:  vocab.Entry{Kana: "ごぜん", Kanji: "午前", Meaning: "上午", WordType: vocab.Direction},
			want:   "时间日期",
			by:     ByGlobal,
		},
		{
			name:   "fallback to word type",
			lesson: 6,
			entry:  vocab.Entry{Kana: "つくえ", Kanji: "机", Meaning: "桌子", WordType: vocab.Noun, Category: vocab.SupplementCategory},
			want:   "名词",
			by:     ByWordType,
		},
		{
			name:   "no word type keeps category",
			lesson: 6,
			entry:  vocab.Entry{Kana: "つくえ", Kanji: "机", Meaning: "桌子", Category: "家具"},
			want:   "家具",
			by:     Unchanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, by := Default.Explain(tt.lesson, tt.entry)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.by, by)
			assert.Equal(t, tt.want, Assign(tt.lesson, tt.entry))
		})
	}
}

func TestTable_Custom(t *testing.T) {
	tbl := &Table{
		Global: []Rule{
			{"A", []string{"x"}},
			{"B", []string{"x", "y"}},
		},
	}
	assert.Equal(t, "A", tbl.Assign(1, vocab.Entry{Kana: "xy"}))
	assert.Equal(t, "B", tbl.Assign(1, vocab.Entry{Meaning: "y"}))
	assert.Equal(t, "", tbl.Assign(1, vocab.Entry{Kana: "z"}))
}
