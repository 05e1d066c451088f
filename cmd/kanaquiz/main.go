package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/japaniel/vocabprep/pkg/applog"
	"github.com/japaniel/vocabprep/pkg/config"
	"github.com/japaniel/vocabprep/pkg/db"
	"github.com/japaniel/vocabprep/pkg/quiz"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens.
func run() int {
	configFlag := flag.String("config", "", "Path to quiz config (default ./kanaquiz.toml)")
	kanaFlag := flag.String("kana", "", "Kana table CSV (default built-in table)")
	dbFlag := flag.String("db", "", "SQLite database for the mistake log (optional)")
	seedFlag := flag.Int64("seed", 0, "Random seed (default current time)")
	statsFlag := flag.Bool("stats", false, "Print mistake statistics from -db and exit")
	itemFlag := flag.String("item", "", "With -stats, also print the mistake count of this kana")
	keepFlag := flag.Int("keep-days", 0, "Drop mistakes older than this many days from -db (0 keeps all)")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	applog.New(config.LogConfig{Level: *logLevel, Format: "text"})

	cfg, found, err := quiz.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if !found {
		fmt.Println("未找到配置文件，使用默认设置。")
	}
	if *kanaFlag != "" {
		cfg.KanaTable = *kanaFlag
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var recorder quiz.MistakeRecorder
	if *dbFlag != "" {
		conn, err := db.Open(*dbFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
			return 1
		}
		defer conn.Close()

		if *keepFlag > 0 {
			n, err := db.ClearOldMistakes(conn, *keepFlag, time.Now())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to clear old mistakes: %v\n", err)
				return 1
			}
			fmt.Printf("已清理 %d 个过期错题。\n", n)
		}
		if *statsFlag {
			if err := printStats(os.Stdout, conn, time.Now(), *itemFlag); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to read mistake statistics: %v\n", err)
				return 1
			}
			return 0
		}

		rec, err := quiz.NewDBRecorder(conn, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start quiz session: %v\n", err)
			return 1
		}
		recorder = rec
	} else if *statsFlag {
		fmt.Fprintln(os.Stderr, "-stats needs -db")
		return 2
	}

	kana, err := quiz.LoadTable(cfg.KanaTable, cfg.Types())
	if errors.Is(err, quiz.ErrTableNotFound) {
		fmt.Printf("找不到假名表：%s\n", cfg.KanaTable)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load kana table: %v\n", err)
		return 1
	}
	if len(kana) == 0 {
		fmt.Println("没有可练习的假名，请检查启用的类型。")
		return 1
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("共 %d 个音，每个需答对 %d 次。\n\n", len(kana), cfg.TargetScore)
	runner := &quiz.Runner{
		Session:  quiz.NewSession(kana, cfg.TargetScore, cfg.OptionCount),
		In:       os.Stdin,
		Out:      os.Stdout,
		Rand:     rand.New(rand.NewSource(seed)),
		Recorder: recorder,
	}
	res, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Quiz failed: %v\n", err)
		return 1
	}
	fmt.Printf("答题 %d 次：正确 %d，错误 %d，不知道 %d，无效输入 %d。\n",
		res.Questions, res.Correct, res.Wrong, res.DontKnow, res.Invalid)
	return 0
}

// printStats writes the mistake summary, the items missed today and, when
// item is set, its mistake count.
func printStats(w io.Writer, conn db.DBExecutor, now time.Time, item string) error {
	stats, err := db.GetMistakeStats(conn, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "错题数：%d（今天 %d，昨天 %d），平均每个 %.1f 次\n",
		stats.Items, stats.Today, stats.Yesterday, stats.AvgPerItem)

	top, err := db.MostMistaken(conn, 10)
	if err != nil {
		return err
	}
	for i, m := range top {
		fmt.Fprintf(w, "%2d. %s → %s  %d 次\n", i+1, m.Item, m.Expected, m.Count)
	}

	today, err := db.MistakesOn(conn, now.Format(db.DayFormat))
	if err != nil {
		return err
	}
	if len(today) > 0 {
		fmt.Fprintln(w, "今天答错：")
		for _, m := range today {
			fmt.Fprintf(w, "  %s → %s  累计 %d 次\n", m.Item, m.Expected, m.Count)
		}
	}

	if item != "" {
		n, err := db.MistakeCountOf(conn, item)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s 共答错 %d 次\n", item, n)
	}
	return nil
}
