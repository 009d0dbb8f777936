package route

import (
	"cafeapi/auth"
	"cafeapi/config"
	"cafeapi/controller"
	"cafeapi/database"
	"cafeapi/templates"
	"cafeapi/utils"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CafeRoutes builds the cafe API on top of db and registers it on router.
func CafeRoutes(router *gin.Engine, db *gorm.DB, cfg config.Config) error {
	pages, err := templates.Load()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(pages)

	policy := controller.StatusPolicy{Strict: cfg.StrictStatusCodes}
	keys := auth.NewKeyVerifier(cfg.APIKey, cfg.APIKeyHash)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret)

	cafeController := controller.NewCafeController(database.NewCafeRepository(db), policy)
	authHandler := auth.NewHandler(keys, tokens, policy.Unauthorized())
	moderator := utils.ModeratorAuth(keys, tokens, policy.Unauthorized())

	router.GET("/", cafeController.Home)
	router.GET("/random", cafeController.RandomCafe)
	router.GET("/all", cafeController.AllCafes)
	router.GET("/search", cafeController.SearchCafes)
	router.POST("/add", cafeController.AddCafe)
	router.POST("/add/excel", moderator, cafeController.BulkAddCafes)
	router.PATCH("/update_price/:id", cafeController.UpdatePrice)
	router.DELETE("/report-closed/:id", moderator, cafeController.ReportClosed)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh-token", authHandler.Refresh)
	}
	return nil
}
