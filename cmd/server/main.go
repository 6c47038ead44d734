package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/api"
	"github.com/shivam041/riseapp/internal/auth"
	"github.com/shivam041/riseapp/internal/chat"
	"github.com/shivam041/riseapp/internal/config"
	"github.com/shivam041/riseapp/internal/notify"
	"github.com/shivam041/riseapp/internal/storage"
)

type server struct {
	logger    internal.Logger
	users     storage.UserStore
	data      *storage.UserData
	scheduler *notify.Scheduler
	chat      *chat.Client
}

func (s *server) Logger() internal.Logger      { return s.logger }
func (s *server) Users() storage.UserStore     { return s.users }
func (s *server) Data() *storage.UserData      { return s.data }
func (s *server) Scheduler() *notify.Scheduler { return s.scheduler }
func (s *server) Chat() *chat.Client           { return s.chat }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.KVBackend == "file" {
		if dir := filepath.Dir(cfg.KVFile); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
	}

	kv, err := storage.NewKVStore(cfg, logger)
	if err != nil {
		logger.Errorf("failed to init kv store: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Errorf("kv close: %v", err)
		}
	}()

	users, err := storage.NewUserStore(cfg, logger)
	if err != nil {
		logger.Errorf("failed to init user store: %v", err)
		os.Exit(1)
	}

	// The memory backend starts empty, so give development runs the same
	// demo account the local auth tier knows about.
	if cfg.UserBackend == "memory" {
		seedDemoUser(users, logger)
	}

	srv := &server{
		logger:    logger,
		users:     users,
		data:      storage.NewUserData(kv),
		scheduler: notify.NewScheduler(notify.NewMemoryNotifier(), logger),
	}
	if cfg.ChatEndpoint != "" {
		srv.chat = chat.NewClient(cfg.ChatEndpoint, cfg.ChatAPIKey, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.Router(srv)
	logger.Infof("server listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

func seedDemoUser(users storage.UserStore, logger internal.Logger) {
	ctx := context.Background()
	user, err := users.CreateUser(ctx, auth.DemoEmail, "demo1234", "Demo User")
	if err != nil {
		logger.Warnf("demo user seed skipped: %v", err)
		return
	}
	user.IsAdmin = true
	if err := users.UpdateUser(ctx, user); err != nil {
		logger.Warnf("demo user admin flag: %v", err)
	}
}
