package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		kanji   string
		kana    string
		meaning string
		want    vocab.WordType
	}{
		{"u ending", "買う", "かう", "买", vocab.Godan},
		{"ku ending", "書く", "かく", "写", vocab.Godan},
		{"gu ending", "泳ぐ", "およぐ", "游泳", vocab.Godan},
		{"su ending", "話す", "はなす", "说", vocab.Godan},
		{"tsu ending", "待つ", "まつ", "等", vocab.Godan},
		{"nu ending", "死ぬ", "しぬ", "死", vocab.Godan},
		{"bu ending", "遊ぶ", "あそぶ", "玩", vocab.Godan},
		{"mu ending", "読む", "よむ", "读", vocab.Godan},
		{"e-row before ru", "食べる", "たべる", "吃", vocab.Ichidan},
		{"i-row before ru", "見る", "みる", "看", vocab.Ichidan},
		{"voiced e-row before ru", "調べる", "しらべる", "调查", vocab.Ichidan},
		{"o-row before ru", "乗る", "のる", "乘坐", vocab.Godan},
		{"a-row before ru", "分かる", "わかる", "明白", vocab.Godan},
		{"single ru", "", "る", "", vocab.Godan},
		{"irregular kanji", "来年", "らいねん", "明年", vocab.Irregular},
		{"i adjective", "高い", "たかい", "贵", vocab.IAdjective},
		{"i ending blocked by marker", "", "きれい", "漂亮的", vocab.Noun},
		{"na adjective", "元気", "げんき", "健康的", vocab.NaAdjective},
		{"katakana", "", "テレビ", "电视", vocab.Loanword},
		{"prolonged sound mark", "", "ばー", "酒吧", vocab.Loanword},
		{"greeting", "", "どうも", "谢谢", vocab.Greeting},
		{"greeting ascii is case folded", "", "すみません", "Excuse me", vocab.Greeting},
		{"number reading", "", "ろくせん", "六千", vocab.Numeral},
		{"digit in kanji", "100円", "ひゃくえん", "一百日元", vocab.Numeral},
		{"time word", "明日", "あした", "明天", vocab.TimeWord},
		{"direction word", "外", "そと", "外面", vocab.Direction},
		{"proper noun", "病院", "びょういん", "医院", vocab.ProperNoun},
		{"pronoun", "私", "わたし", "我", vocab.Pronoun},
		{"adverb", "", "とても", "很", vocab.Adverb},
		{"default", "机", "つくえ", "桌子", vocab.Noun},
		{"empty input", "", "", "", vocab.Noun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.kanji, tt.kana, tt.meaning))
		})
	}
}

func TestClassify_GreetingBeatsTimeWord(t *testing.T) {
	assert.Equal(t, vocab.Greeting, Classify("", "こんにちは", "您好，今天"))
}

func TestClassify_Determiner(t *testing.T) {
	assert.Equal(t, vocab.Determiner, Classify("", "この", ""))
}

func TestClassify_IsPure(t *testing.T) {
	inputs := [][3]string{
		{"食べる", "たべる", "吃"},
		{"", "テレビ", "电视"},
		{"机", "つくえ", "桌子"},
	}
	first := make([]vocab.WordType, len(inputs))
	for i, in := range inputs {
		first[i] = Classify(in[0], in[1], in[2])
	}
	for round := 0; round < 3; round++ {
		for i := len(inputs) - 1; i >= 0; i-- {
			in := inputs[i]
			assert.Equal(t, first[i], Classify(in[0], in[1], in[2]))
		}
	}
}

func TestWithIrregularFirst(t *testing.T) {
	std := New()
	assert.Equal(t, vocab.Godan, std.Classify("", "する", "做"), "endings win in the default order")
	assert.Equal(t, vocab.Godan, std.Classify("来ます", "きます", "来"))

	c := New(WithIrregularFirst())
	assert.Equal(t, vocab.Irregular, c.Classify("", "する", "做"))
	assert.Equal(t, vocab.Irregular, c.Classify("", "べんきょうする", "学习"))
	assert.Equal(t, vocab.Irregular, c.Classify("来ます", "きます", "来"))
	assert.Equal(t, vocab.Ichidan, c.Classify("食べる", "たべる", "吃"))

	rules := c.Rules()
	require.NotEmpty(t, rules)
	assert.Equal(t, "irregular-verb", rules[0].Name)
	assert.Len(t, rules, len(DefaultRules))
	assert.Equal(t, "godan-ending", DefaultRules[0].Name, "options never reorder the shared table")
}

func TestExplain(t *testing.T) {
	typ, rule := New().Explain("乗る", "のる", "乘坐")
	assert.Equal(t, vocab.Godan, typ)
	assert.Equal(t, "ru-ending", rule)

	typ, rule = New().Explain("机", "つくえ", "桌子")
	assert.Equal(t, vocab.Noun, typ)
	assert.Equal(t, DefaultName, rule)
}

func TestHasKatakana(t *testing.T) {
	assert.True(t, HasKatakana("コーヒー"))
	assert.True(t, HasKatakana("アメリカじん"))
	assert.False(t, HasKatakana("ひらがな"))
	assert.False(t, HasKatakana("・"))
	assert.False(t, HasKatakana(""))
}
