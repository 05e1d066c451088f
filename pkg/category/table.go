package category

// Default is the category table for the 25 lessons of the textbook.
var Default = &Table{
	Pins: map[int][]Pin{
		1: {
			{"あの人", "代词"},
			{"ちゅうごくじん", "国籍职业"},
			{"にほんじん", "国籍职业"},
			{"かんこくじん", "国籍职业"},
			{"アメリカじん", "国籍职业"},
		},
		2: {
			{"この", "指示代词"},
			{"その", "指示代词"},
			{"あの", "指示代词"},
		},
		5: {
			{"にほん", "国家城市"},
		},
	},
	GreetingMeanings: []string{"失礼", "请", "谢谢", "欢迎", "光临", "初次见面", "请多关照"},
	Lessons: map[int][]Rule{
		1: {
			{Greeting, []string{"しつれいですが", "はじめまして", "よろしく", "失礼", "初次见面", "请多关照"}},
			{"人称代词", []string{"わたし", "あなた", "あの人", "我", "你", "那个人"}},
			{"人物称谓", []string{"がくせい", "せんせい", "学生", "老师", "教师"}},
			{"国籍职业", []string{"ちゅうごくじん", "にほんじん", "かんこくじん", "アメリカじん", "エンジニア", "中国人", "日本人", "韩国人", "美国人", "工程师"}},
			{"基本表达", []string{"です", "ではありません", "は", "も", "～さん", "～ちゃん", "～くん"}},
			{"疑问词", []string{"だれ", "なん", "谁", "什么"}},
		},
		2: {
			{Greeting, []string{"どうぞ", "ありがとう", "请", "谢谢"}},
			{"指示代词", []string{"これ", "それ", "あれ", "この", "その", "あの", "这", "那"}},
			{"学习用品", []string{"ほん", "じしょ", "ざっし", "しんぶん", "ノート", "てちょう", "めいし", "カード", "えんぴつ", "ボールペン", "シャープペンシル", "かばん", "书", "词典", "杂志", "报纸", "笔记本", "名片", "铅笔", "圆珠笔", "自动铅笔", "书包"}},
			{"电子产品", []string{"テープ", "テープレコーダー", "テレビ", "ラジオ", "カメラ", "コンピューター", "录音带", "录音机", "电视", "收音机", "照相机", "电脑"}},
			{"日用品", []string{"かぎ", "とけい", "かさ", "钥匙", "钟表", "雨伞"}},
			{"食物饮品", []string{"チョコレート", "コーヒー", "巧克力", "咖啡"}},
		},
		3: {
			{"场所地点", []string{"ロビー", "トイレ", "エレベーター", "かいだん", "大厅", "厕所", "电梯", "楼梯"}},
			{"方位词", []string{"こちら", "そちら", "あちら", "どちら", "这边", "那边", "哪边"}},
		},
		5: {
			{"移动动词", []string{"いきます", "きます", "かえります", "去", "来", "回家"}},
			{"交通工具", []string{"でんしゃ", "バス", "タクシー", "じてんしゃ", "ひこうき", "ふね", "ちかてつ", "电车", "公车", "出租车", "自行车", "飞机", "船", "地下铁"}},
			{"场所地点", []string{"がっこう", "かいしゃ", "うち", "えき", "ひこうじょう", "デパート", "スーパー", "レストラン", "学校", "公司", "家", "车站", "机场", "百货", "超市", "餐厅"}},
			{"国家城市", []string{"にほん", "ちゅうごく", "かんこく", "アメリカ", "とうきょう", "おおさか", "きょうと", "日本", "中国", "韩国", "美国", "东京", "大阪", "京都"}},
			{"时间日期", []string{"らいしゅう", "らいげつ", "らいねん", "きょう", "あした", "きのう", "下周", "下月", "明年", "今天", "明天", "昨天", "月", "日", "年"}},
		},
	},
	Global: []Rule{
		{Greeting, []string{"失礼", "请", "谢谢", "对不起", "欢迎", "光临", "不好意思", "打扰", "初次见面", "请多关照", "早上好", "您好", "再见", "晚上好", "どうぞ", "ありがとう", "すみません", "いらっしゃい", "はじめまして", "よろしく"}},
		{"数量词", []string{"ひとつ", "ふたつ", "みっつ", "よっつ", "いつつ", "むっつ", "ななつ", "やっつ", "ここのつ", "とお", "ひとり", "ふたり", "一个", "两个", "三个", "四个", "五个", "六个", "七个", "八个", "九个", "十个", "一人", "二人", "岁"}},
		{"时间日期", []string{"時", "分", "年", "月", "日", "今", "昨", "明", "星期", "时间", "现在", "上午", "下午", "晚上", "～時", "～分", "いちがつ", "にがつ", "さんがつ", "しがつ", "ごがつ", "ろくがつ", "しちがつ", "はちがつ", "くがつ", "じゅうがつ", "じゅういちがつ", "じゅうにがつ"}},
	},
}
