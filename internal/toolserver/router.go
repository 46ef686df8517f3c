package toolserver

import (
	"context"
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"

	"analyzer-backend/internal/shared/config"
	"analyzer-backend/internal/shared/metrics"
	"analyzer-backend/internal/shared/server/middleware"
	"analyzer-backend/internal/shared/storage/db"
	"analyzer-backend/internal/summaries"
)

// NewRouter constructs the Gin engine with middleware and the tool routes
// registered. A database that cannot be reached degrades to the in-memory
// store rather than refusing to start.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), conn, cfg.DatabaseURL); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				conn.Close()
				conn = nil
			}
		}
		sqlDB = conn
	}

	var repo summaries.Repo
	switch {
	case sqlDB == nil:
		repo = summaries.NewMemoryRepo()
	case db.DriverForDSN(cfg.DatabaseURL) == "pgx":
		repo = &summaries.PGRepo{DB: sqlDB}
	default:
		repo = &summaries.SQLiteRepo{DB: sqlDB}
	}

	handler := NewHandler(repo, sqlDB, cfg.DocumentRoot)
	handler.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3333"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
