package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/z-board/internal/config"
	"github.com/zhouzirui/z-board/internal/logging"
	"github.com/zhouzirui/z-board/internal/model/message"
)

func main() {
	// 没有 .env 时直接使用系统环境变量
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Pretty: true, ServiceName: "boardctl"})
	logger := logging.L()

	storagePath := flag.String("storage", cfg.Paths.StoragePath, "留言存储文件路径")
	list := flag.Bool("list", false, "列出全部留言")
	post := flag.Bool("post", false, "写入一条留言")
	username := flag.String("username", "", "留言用户名 (配合 -post)")
	text := flag.String("message", "", "留言内容 (配合 -post)")
	timeout := flag.Duration("timeout", 10*time.Second, "操作超时时间")

	flag.Parse()

	if *list == *post {
		flag.Usage()
		logger.Fatal().Msg("请通过 -list 或 -post 指定一种操作")
	}

	store := message.NewFileStore(*storagePath)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *post {
		entry, err := store.Save(ctx, *username, *text)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *storagePath).Msg("写入留言失败")
		}
		logger.Info().Str("timestamp", entry.Timestamp).Str("path", *storagePath).Msg("留言已写入")
		return
	}

	if err := listEntries(ctx, store, os.Stdout); err != nil {
		logger.Fatal().Err(err).Str("path", *storagePath).Msg("读取留言失败")
	}
}

func listEntries(ctx context.Context, store message.Store, w io.Writer) error {
	board, err := store.Load(ctx)
	if err != nil {
		return err
	}
	return printEntries(w, board.Entries())
}

func printEntries(w io.Writer, entries []message.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tUSERNAME\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp, e.Username, e.Message)
	}
	return tw.Flush()
}
