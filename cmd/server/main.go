package main

import (
	"net/http"

	_ "tasktracker/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/db"
	"tasktracker/internal/handler"
	"tasktracker/internal/logger"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
	"tasktracker/internal/router"
	"tasktracker/internal/service"
)

// @title Task Tracker API
// @version 1.0
// @description Small task-tracking backend: users, tasks, and task status transitions.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)
	log := logger.L()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, userHandler, taskHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
