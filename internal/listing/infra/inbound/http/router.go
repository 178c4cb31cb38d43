package http

import "github.com/gin-gonic/gin"

// RegisterListingRoutes mounts the listing endpoints. Mutations and stats
// require the admin middleware; browsing is public.
func RegisterListingRoutes(r *gin.Engine, handler *ListingHandler, admin gin.HandlerFunc) {
	projects := r.Group("/api/projects")
	{
		projects.GET("", handler.ListListings)
		projects.GET("/featured", handler.FeaturedListings)
		projects.GET("/stats", admin, handler.ListingStats)
		projects.GET("/:id", handler.GetListing)
		projects.POST("", admin, handler.CreateListing)
		projects.POST("/:id/images", admin, handler.AddListingImage)
		projects.PUT("/:id", admin, handler.UpdateListing)
		projects.DELETE("/:id", admin, handler.DeleteListing)
	}
}
