package storage

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"AllWell/config"
	dbotel "AllWell/pkg/database"
	"AllWell/pkg/logger"
	mqotel "AllWell/pkg/mq"
	redisotel "AllWell/pkg/redis"
	"AllWell/storage/database"
	"AllWell/storage/mq"
	"AllWell/storage/redis"
)

//统一 init storage 层

func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	if config.Cfg.TracingEnabled {
		initStorageMetrics()
	}

	return nil
}

// initStorageMetrics 注册存储层指标，失败只降级不阻塞启动
func initStorageMetrics() {
	meter := otel.Meter("allwell-storage")

	if err := dbotel.InitDatabaseMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to initialize database metrics", zap.Error(err))
	}
	if err := redisotel.InitRedisMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to initialize redis metrics", zap.Error(err))
	}
	if err := mqotel.InitMQMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to initialize mq metrics", zap.Error(err))
	}
}
