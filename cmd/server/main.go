// Package main runs the Doce Mila storefront API: product catalog with
// filtering and sorting, per-session shopping carts, simulated auth, and the
// contact-form relay.
//
// Package main 运行 Doce Mila 店面 API：带过滤和排序的产品目录、
// 按会话划分的购物车、模拟身份验证以及联系表单转发。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/docemila/configs"
	"github.com/yourusername/docemila/internal/auth"
	"github.com/yourusername/docemila/internal/cart"
	"github.com/yourusername/docemila/internal/catalog"
	"github.com/yourusername/docemila/internal/contact"
	"github.com/yourusername/docemila/internal/handler"
	"github.com/yourusername/docemila/internal/logging"
	"github.com/yourusername/docemila/internal/metrics"
)

func main() {
	// Parse command line flags
	// 解析命令行参数
	configFile := flag.String("config", "", "Path to config file (YAML or JSON)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	productsFile := flag.String("products", "", "Path to products file (overrides config)")
	flag.Parse()

	cfg := configs.DefaultConfig()
	var viperCfg *configs.ViperConfig
	if *configFile != "" {
		loaded, err := configs.NewViperConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		viperCfg = loaded
		cfg = viperCfg.Get()
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *productsFile != "" {
		cfg.Catalog.ProductsFile = *productsFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// Hot reload applies to settings read per request through subscribers;
	// the server address and wiring stay as started.
	// 热重载适用于订阅者每次请求读取的设置；服务器地址和组件装配保持启动时的状态。
	if viperCfg != nil && cfg.Extensions.HotReload.Enable {
		viperCfg.EnableHotReload()
		viperCfg.Subscribe(func(newCfg *configs.Config) {
			logger.Info("configuration reloaded",
				zap.String("file", *configFile),
				zap.String("log_level", newCfg.Log.Level))
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the catalog once at startup; a broken products file is fatal here,
	// while later reloads keep serving the previous snapshot.
	// 启动时加载一次目录；此处产品文件损坏是致命错误，
	// 而后续重新加载会继续使用之前的快照。
	cat, err := catalog.New(cfg.Catalog, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	if cfg.Catalog.Watch {
		go func() {
			if err := cat.Watch(ctx); err != nil {
				logger.Error("catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	sessions, err := newSessionStore(ctx, cfg.Auth)
	if err != nil {
		logger.Fatal("failed to create session store", zap.Error(err))
	}

	router := handler.NewRouter(handler.Deps{
		Catalog: cat,
		Carts:   cart.NewStore(),
		Auth:    auth.NewService(cfg.Auth, sessions, logger),
		Relay:   contact.NewRelay(cfg.Contact, logger),
		Metrics: metrics.New(),
		Logger:  logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", server.Addr),
			zap.Int("products", cat.Len()),
			zap.String("session_store", cfg.Auth.Store))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	// Graceful shutdown: let in-flight requests drain
	// 优雅关闭：让进行中的请求处理完毕
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// newSessionStore picks the session backend from config: in-process memory by
// default, Redis when configured for multi-instance deployments.
func newSessionStore(ctx context.Context, cfg configs.AuthConfig) (auth.SessionStore, error) {
	switch cfg.Store {
	case "", "memory":
		return auth.NewMemoryStore(), nil
	case "redis":
		return auth.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.SessionTTL)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
