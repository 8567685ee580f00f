// Command seed loads the demo pandit directory into MongoDB.
package main

import (
	"context"
	"time"

	"panditseva/config"
	"panditseva/database"
	panditRepo "panditseva/database/repository/pandit"
	"panditseva/database/seed"
	"panditseva/utils"

	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	defer database.Disconnect(ctx)

	repo, err := panditRepo.NewMongoPanditRepo(database.DB())
	if err != nil {
		logger.Fatal("Failed to prepare pandit collection", zap.Error(err))
	}

	// Going through the cache drops stale listings so the API sees the new
	// directory at once.
	cached := panditRepo.NewCachedPanditRepo(repo, utils.GetCacheClient(), config.AppConfig.DirectoryCacheTTL, logger)

	n, err := seed.Load(ctx, cached, time.Now().UTC())
	if err != nil {
		logger.Fatal("Seeding failed", zap.Int("inserted", n), zap.Error(err))
	}
	logger.Info("Seeded pandit directory", zap.Int("pandits", n), zap.String("database", config.AppConfig.DatabaseName))
}
