package main

import (
	"AllWell/internal/repository"
	"AllWell/pkg/logger"
)

func main() {
	logger.Init()
	defer logger.Sync()

	repository.RunGenerate()
}
