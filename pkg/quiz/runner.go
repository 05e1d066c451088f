package quiz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/japaniel/vocabprep/pkg/db"
)

// Mistake kinds passed to a MistakeRecorder.
const (
	MistakeWrong    = db.KindWrong
	MistakeDontKnow = db.KindDontKnow
)

// DontKnow is the choice that gives up on a question.
const DontKnow = 0

// MistakeRecorder persists wrong answers.
type MistakeRecorder interface {
	RecordMistake(kana, answer, expected, kind string) error
}

// Result summarizes a run.
type Result struct {
	Questions int
	Correct   int
	Wrong     int
	DontKnow  int
	Invalid   int
	// Completed is true when every kana reached the target score.
	Completed bool
}

// Runner drives a Session over a line-oriented console.
type Runner struct {
	Session  *Session
	In       io.Reader
	Out      io.Writer
	Rand     *rand.Rand
	Recorder MistakeRecorder
}

// Run asks questions until the session is done, the input ends or ctx is
// cancelled. Non-numeric input and out-of-range choices are reported and the
// loop moves on to a new question.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var res Result
	sc := bufio.NewScanner(r.In)

	for !r.Session.Done() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		kana, _ := r.Session.Next(r.Rand)
		expected := r.Session.Romaji(kana)
		options := r.Session.Options(kana, r.Rand)

		fmt.Fprintf(r.Out, "请为 [%s] 选择正确的罗马音：\n", kana)
		for i, o := range options {
			fmt.Fprintf(r.Out, "%d. %s\n", i+1, o)
		}
		fmt.Fprintf(r.Out, "请输入选项编号（%d = 不知道）：", DontKnow)

		if !sc.Scan() {
			fmt.Fprintln(r.Out)
			return res, sc.Err()
		}
		res.Questions++

		choice, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintln(r.Out, "无效输入，请输入数字。")
			res.Invalid++
			continue
		}
		if choice != DontKnow && (choice < 1 || choice > len(options)) {
			fmt.Fprintln(r.Out, "无效选择，请重新输入。")
			res.Invalid++
			continue
		}

		var score int
		var retired bool
		switch {
		case choice == DontKnow:
			fmt.Fprintf(r.Out, "正确答案是：%s\n", expected)
			res.DontKnow++
			r.record(kana, "", expected, MistakeDontKnow)
			score, retired = r.Session.Answer(kana, false)
		case options[choice-1] == expected:
			fmt.Fprintln(r.Out, "正确！")
			res.Correct++
			score, retired = r.Session.Answer(kana, true)
		default:
			fmt.Fprintf(r.Out, "错误！正确答案是：%s\n", expected)
			res.Wrong++
			r.record(kana, options[choice-1], expected, MistakeWrong)
			score, retired = r.Session.Answer(kana, false)
		}

		if retired {
			fmt.Fprintf(r.Out, "[%s] 达标，不再出现！\n", kana)
		} else {
			fmt.Fprintf(r.Out, "当前得分：%d/%d\n", score, r.Session.TargetScore())
		}
		fmt.Fprintln(r.Out)
	}

	res.Completed = true
	fmt.Fprintln(r.Out, "恭喜你，全部音都达标了！")
	return res, nil
}

func (r *Runner) record(kana, answer, expected, kind string) {
	if r.Recorder == nil {
		return
	}
	if err := r.Recorder.RecordMistake(kana, answer, expected, kind); err != nil {
		slog.Warn("failed to record mistake", "kana", kana, "error", err)
	}
}
