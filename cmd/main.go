package main

import (
	"github.com/Makarios44/smart-plan-eats-sub000/config"
	"github.com/Makarios44/smart-plan-eats-sub000/jobs"
	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/logger"
	"github.com/Makarios44/smart-plan-eats-sub000/routes"
	"github.com/Makarios44/smart-plan-eats-sub000/services"
	"github.com/Makarios44/smart-plan-eats-sub000/utils"

	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Sync()

	config.InitDB()
	utils.InitMailer()
	utils.InitS3()

	llmClient := llm.NewClient()
	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		logger.Warn("push service unavailable, continuing without mobile push", zap.Error(err))
		push = nil
	}
	services.InitAlertDeps(config.DB, hub, push)

	sched, err := jobs.Start(config.DB, push)
	if err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer func() { _ = sched.Shutdown() }()

	r := routes.SetupRouter(routes.Deps{LLM: llmClient, Hub: hub, Push: push})
	if err := r.Run(":8080"); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
