package routes

import (
	catalogsapi "catalog-app/internal/api/catalogs"
	itemsapi "catalog-app/internal/api/items"
	savedapi "catalog-app/internal/api/saved"
	uploadapi "catalog-app/internal/api/upload"
	usersapi "catalog-app/internal/api/users"
	"catalog-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Optionally authenticated reads: public catalogs work for anonymous
	// viewers, personalization kicks in when a valid token is present.
	public := r.Group("/")
	public.Use(middleware.OptionalAuthMiddleware())
	public.GET("/catalogs/public", catalogsapi.ListPublicCatalogs)
	public.GET("/items/catalog/:id", itemsapi.ListByCatalog)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())

	auth.GET("/catalogs", catalogsapi.ListCatalogs)
	auth.GET("/catalogs/:id", catalogsapi.GetCatalog)
	auth.POST("/catalogs", catalogsapi.CreateCatalog)
	auth.PUT("/catalogs/:id", catalogsapi.UpdateCatalog)
	auth.DELETE("/catalogs/:id", catalogsapi.DeleteCatalog)

	auth.GET("/items/:id", itemsapi.GetItem)
	auth.POST("/items", itemsapi.CreateItem)
	auth.PUT("/items/:id", itemsapi.UpdateItem)
	auth.DELETE("/items/:id", itemsapi.DeleteItem)
	auth.PATCH("/items/:id/toggle-owned", itemsapi.ToggleOwned)

	auth.GET("/user-catalogs/my-catalogs", savedapi.MyCatalogs)
	auth.POST("/user-catalogs/save-catalog", savedapi.SaveCatalog)
	auth.DELETE("/user-catalogs/unsave-catalog/:id", savedapi.UnsaveCatalog)
	auth.GET("/user-catalogs/check-ownership/:id", savedapi.CheckOwnership)
	auth.GET("/user-catalogs/check-saved/:id", savedapi.CheckSaved)

	auth.POST("/upload/file", uploadapi.UploadFile)
	auth.DELETE("/upload/file", uploadapi.DeleteFile)

	auth.DELETE("/users/me", usersapi.DeleteMyData)
}
