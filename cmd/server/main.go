package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu-cart/internal/controllers/http"
	"edu-cart/internal/infra"
	mmysql "edu-cart/internal/infra/mysql"
	"edu-cart/internal/infra/rabbitmq"
	mysqlrepo "edu-cart/internal/repository/mysql"
	"edu-cart/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1000)
	sqlDB.SetMaxIdleConns(200)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	productRepo := mysqlrepo.NewProductRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	userRepo := mysqlrepo.NewUserRepository(db)
	categoryRepo := mysqlrepo.NewCategoryRepository(db)
	txManager := mysqlrepo.NewTxManager(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "order.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokenTTL := 2 * time.Hour
	if raw := os.Getenv("TOKEN_TTL_MINUTES"); raw != "" {
		if d, err := time.ParseDuration(raw + "m"); err == nil {
			tokenTTL = d
		}
	}

	userService := services.NewUserService(userRepo, []byte(jwtSecret), tokenTTL)
	productService := services.NewProductService(productRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo)
	checkoutService := services.NewCheckoutService(txManager, publisher)

	redisClient := infra.NewRedisFromEnv()
	productService.SetRedisClient(redisClient)
	checkoutService.SetRedisClient(redisClient)

	go func() {
		time.Sleep(5 * time.Second)
		if err := productService.WarmupProductCache(context.Background(), []uint64{1, 2}); err != nil {
			log.Printf("Failed to warm up cache: %v", err)
		} else {
			log.Println("Cache warmed up successfully")
		}
	}()

	handler := http.NewHandler(userService, productService, categoryService, cartService, orderService, checkoutService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &nethttp.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting edu-cart server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
