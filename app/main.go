package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/events"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository"
	mysqlRepo "github.com/RealTimeMap/RealTimeMap-backend/internal/repository/mysql"
	myRedisCache "github.com/RealTimeMap/RealTimeMap-backend/internal/repository/redis"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/rest"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/rest/middleware"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/usecase/comment"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/usecase/dashboard"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/workers"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	if _, err = client.Ping(context.Background()).Result(); err != nil {
		// the dashboard degrades to direct recomputation without cache
		log.Printf("cache is unreachable, continuing without it: %v", err)
	}

	// prepare gin
	rest.RegisterValidations()
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	markRepo := mysqlRepo.NewMarkRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)

	// Dashboard的三层架构
	// 1. DB层
	dashboardDBRepo := mysqlRepo.NewDashboardDBRepository(db)
	// 2. Cache层
	dashboardCache := myRedisCache.NewDashboardCache(client)
	// 3. Repository协调层
	dashboardRepo := repository.NewDashboardRepository(dashboardDBRepo, dashboardCache)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statsSyncer := workers.NewStatsSyncer(commentRepo)
	go statsSyncer.Start(ctx)

	// Build service Layer
	publisher := events.NewLogPublisher()
	commentSvc := comment.NewService(commentRepo, markRepo, userRepo, statsSyncer,
		comment.WithHooks(comment.Hooks{
			AfterCreate: func(ctx context.Context, c *domain.Comment) {
				ev := domain.CommentCreatedEvent{
					CommentID: c.ID,
					MarkID:    c.MarkID,
					OwnerID:   c.OwnerID,
					ParentID:  c.ParentID,
					CreatedAt: c.CreatedAt,
				}
				go func() {
					if err := publisher.PublishCommentCreated(context.Background(), ev); err != nil {
						logrus.Warnf("failed to publish comment created event: %v", err)
					}
				}()
			},
		}),
	)
	dashboardSvc := dashboard.NewService(dashboardRepo)

	commentHandler := rest.NewCommentHandler(commentSvc)
	dashboardHandler := rest.NewDashboardHandler(dashboardSvc)

	jwtSecret := os.Getenv("JWT_SECRET")
	authMiddleware := middleware.AuthMiddleware(jwtSecret)

	// Register routes
	route.GET("/marks/:id/comments", commentHandler.ListForMark)
	route.GET("/comments/:id/replies", commentHandler.ListReplies)
	route.GET("/admin/dashboard", dashboardHandler.Snapshot)

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.POST("/marks/:id/comments", commentHandler.CreateComment)
		authorized.POST("/comments/:id/reactions", commentHandler.ToggleReaction)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
