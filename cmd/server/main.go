/*
 * @author: sun977
 * @date: 2025.11.20
 * @description: 主程序入口
 * @func: 加载配置、初始化日志与存储、执行启动引导、配置路由、启动服务器、等待中断信号
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neocms/internal/app/server/router"
	"neocms/internal/config"
	"neocms/internal/pkg/database"
	"neocms/internal/pkg/logger"
)

func main() {
	// 加载配置(路径与环境从NEOCMS_CONFIG_PATH/NEOCMS_ENV读取)
	cfg, err := config.LoadConfig("", "")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 启动配置热加载监听(日志级别等运行期可调整项)
	if err := config.StartConfigWatcher("", ""); err != nil {
		log.Printf("Config watcher not started: %v", err)
	} else {
		defer config.StopConfigWatcher()
		if err := config.AddConfigReloadCallback(config.LogConfigReloadCallback); err != nil {
			log.Printf("Failed to register config reload callback: %v", err)
		}
	}

	// 初始化存储连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		log.Fatalf("Failed to connect mysql: %v", err)
	}

	redisClient, err := database.NewRedisConnection(&cfg.Database.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	// 初始化路由器(内部完成模块装配)
	r, err := router.NewRouter(db, redisClient, cfg)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	// 启动引导: 表迁移/依赖表检查/权限目录同步/系统组种子/SINGLE实例供给
	// 任一步失败则进程不允许启动
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer bootCancel()
	if err := r.GetCMSModule().Bootstrapper.Run(bootCtx); err != nil {
		log.Fatalf("Failed to bootstrap platform: %v", err)
	}

	r.SetupRoutes()

	// 创建HTTP服务器
	addr := cfg.Server.GetAddress()
	server := &http.Server{
		Addr:           addr,
		Handler:        r.GetEngine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动服务器的goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 给服务器5秒钟的时间来完成现有请求
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exiting")
}
