package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"facilicar_backend/internal/database"
	"facilicar_backend/internal/router"
	"facilicar_backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	utils.InitLogger()

	// Money fields marshal as JSON numbers, matching the stored JSONB
	// snapshot shape.
	decimal.MarshalJSONWithoutQuotes = true

	if utils.Getenv("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB(
		utils.Getenv("DB_HOST", "localhost"),
		utils.Getenv("DB_PORT", "5432"),
		utils.Getenv("DB_USER", "postgres"),
		utils.Getenv("DB_PASSWORD", "postgres"),
		utils.Getenv("DB_NAME", "facilicar"),
		utils.Getenv("DB_SSLMODE", "disable"),
		utils.Getenv("DB_SCHEMA_PATH", "db_schema.sql"),
	)
	db := database.GetDB()
	defer db.Close()

	engine := router.Setup(db)

	port := utils.Getenv("SERVER_PORT", "8080")
	utils.LogInfo("Starting server", map[string]interface{}{"port": port})
	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
