package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ogurasousui/employee-directory/internal/platform/logging"
)

// OpenGorm は既存の pgx プールを共有する gorm.DB を生成します。
// 接続の寿命はプールが管理するため、呼び出し側はプールを閉じるだけで構いません。
func OpenGorm(pool *pgxpool.Pool, logger zerolog.Logger) (*gorm.DB, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres: pool is required")
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logging.NewGormLogger(logger),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres: open gorm: %w", err)
	}

	return db, nil
}
