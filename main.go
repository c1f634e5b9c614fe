/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-16 15:01:40
 * @LastEditTime: 2026-03-26 09:52:13
 * @LastEditors: 安知鱼
 */
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anzhiyu-c/noteva-pixel-theme/cmd/server"
)

func main() {
	app, cleanup, err := server.NewApp()
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	app.PrintBanner()

	// 监听退出信号，保证调度器与事件总线优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("收到退出信号，正在关闭...")
		cleanup()
		os.Exit(0)
	}()

	if err := app.Run(); err != nil {
		cleanup()
		log.Fatalf("应用运行失败: %v", err)
	}
}
