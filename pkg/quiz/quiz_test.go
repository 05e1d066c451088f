package quiz

import (
	"bytes"
	"context"
	"database/sql"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/vocabprep/pkg/db"
)

func TestLoadTable_Default(t *testing.T) {
	all, err := LoadTable("", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", all["あ"])
	assert.Equal(t, "shi", all["シ"])
	assert.Equal(t, "kya", all["きゃ"])
	assert.Equal(t, "kaa", all["カー"])

	hira, err := LoadTable("", []string{Hiragana})
	require.NoError(t, err)
	assert.Len(t, hira, 46)
	_, ok := hira["ア"]
	assert.False(t, ok)
}

func TestLoadTable_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kana.csv")
	require.NoError(t, os.WriteFile(path, []byte("type,kana,romaji\nhiragana,あ,a\nkatakana,ア,a\nhiragana,,x\n"), 0o644))

	got, err := LoadTable(path, []string{Katakana})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ア": "a"}, got)
}

func TestLoadTable_Missing(t *testing.T) {
	got, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.Empty(t, got)
}

func TestParseTable_MissingColumn(t *testing.T) {
	_, err := ParseTable(strings.NewReader("kana,type\nあ,hiragana\n"), nil)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kanaquiz.toml")
	require.NoError(t, os.WriteFile(path, []byte("enabled_types = [\"hiragana\", \"youon\"]\ntarget_score = 3\n"), 0o644))

	cfg, found, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{Hiragana, Youon}, cfg.Types())
	assert.Equal(t, 3, cfg.TargetScore)
	assert.Equal(t, 4, cfg.OptionCount)

	cfg, found, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, AllTypes, cfg.Types())
	assert.Equal(t, 2, cfg.TargetScore)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("enabled_types = [\"kanji\"]\n"), 0o644))
	_, _, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestSession_Answer(t *testing.T) {
	s := NewSession(map[string]string{"あ": "a", "い": "i"}, 2, 4)
	assert.Equal(t, 2, s.Remaining())

	score, retired := s.Answer("あ", false)
	assert.Equal(t, 0, score, "score never drops below zero")
	assert.False(t, retired)

	score, _ = s.Answer("あ", true)
	assert.Equal(t, 1, score)
	score, _ = s.Answer("あ", false)
	assert.Equal(t, 0, score)

	s.Answer("あ", true)
	score, retired = s.Answer("あ", true)
	assert.Equal(t, 2, score)
	assert.True(t, retired)
	assert.Equal(t, 1, s.Remaining())

	_, retired = s.Answer("あ", true)
	assert.False(t, retired, "retired kana are ignored")
	assert.False(t, s.Done())
}

func TestSession_NextAndOptions(t *testing.T) {
	table := map[string]string{"じ": "ji", "ぢ": "ji", "か": "ka", "さ": "sa", "た": "ta"}
	s := NewSession(table, 1, 4)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		kana, ok := s.Next(rng)
		require.True(t, ok)
		opts := s.Options(kana, rng)
		assert.Len(t, opts, 4)
		assert.Contains(t, opts, table[kana])

		seen := map[string]bool{}
		for _, o := range opts {
			assert.False(t, seen[o], "duplicate option %q in %v", o, opts)
			seen[o] = true
		}
	}

	small := NewSession(map[string]string{"あ": "a", "い": "i"}, 1, 4)
	assert.Len(t, small.Options("あ", rng), 2)
}

func TestSession_NextWhenDone(t *testing.T) {
	s := NewSession(map[string]string{}, 2, 4)
	_, ok := s.Next(rand.New(rand.NewSource(1)))
	assert.False(t, ok)
	assert.True(t, s.Done())
}

type fakeRecorder struct {
	calls [][4]string
}

func (f *fakeRecorder) RecordMistake(kana, answer, expected, kind string) error {
	f.calls = append(f.calls, [4]string{kana, answer, expected, kind})
	return nil
}

func TestRunner_Completes(t *testing.T) {
	// One option per question: choice 1 is always right.
	s := NewSession(map[string]string{"あ": "a", "い": "i"}, 1, 1)
	var out bytes.Buffer
	r := &Runner{
		Session: s,
		In:      strings.NewReader("x\n5\n1\n1\n"),
		Out:     &out,
		Rand:    rand.New(rand.NewSource(7)),
	}
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 2, res.Invalid)
	assert.Equal(t, 4, res.Questions)
	assert.Contains(t, out.String(), "无效输入，请输入数字。")
	assert.Contains(t, out.String(), "无效选择，请重新输入。")
	assert.Contains(t, out.String(), "达标，不再出现！")
	assert.True(t, strings.HasSuffix(out.String(), "恭喜你，全部音都达标了！\n"))
}

func TestRunner_DontKnowAndEOF(t *testing.T) {
	s := NewSession(map[string]string{"ぬ": "nu"}, 2, 3)
	rec := &fakeRecorder{}
	var out bytes.Buffer
	r := &Runner{
		Session:  s,
		In:       strings.NewReader("0\n"),
		Out:      &out,
		Rand:     rand.New(rand.NewSource(3)),
		Recorder: rec,
	}
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Completed)
	assert.Equal(t, 1, res.DontKnow)
	assert.Equal(t, [][4]string{{"ぬ", "", "nu", MistakeDontKnow}}, rec.calls)
	assert.Contains(t, out.String(), "正确答案是：nu")
	assert.Contains(t, out.String(), "当前得分：0/2")
	assert.Equal(t, 1, s.Remaining())
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{
		Session: NewSession(map[string]string{"あ": "a"}, 1, 1),
		In:      strings.NewReader("1\n"),
		Out:     &bytes.Buffer{},
		Rand:    rand.New(rand.NewSource(1)),
	}
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDBRecorder(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	conn.SetMaxOpenConns(1)
	require.NoError(t, db.InitDB(conn))

	rec, err := NewDBRecorder(conn, &Config{TargetScore: 2, OptionCount: 4})
	require.NoError(t, err)
	require.NotEmpty(t, rec.SessionID)
	rec.Now = func() time.Time { return time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC) }

	require.NoError(t, rec.RecordMistake("き", "sa", "ki", MistakeWrong))
	require.NoError(t, rec.RecordMistake("き", "", "ki", MistakeDontKnow))

	top, err := db.MostMistaken(conn, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "き", top[0].Item)
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, []string{"2024-01-02"}, top[0].Days)
}
