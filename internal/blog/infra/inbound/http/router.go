package http

import "github.com/gin-gonic/gin"

// RegisterBlogRoutes mounts the blog endpoints. The public catalog only
// serves published posts; the unrestricted list, mutations and stats require
// the admin middleware. Liking stays public.
func RegisterBlogRoutes(r *gin.Engine, handler *BlogHandler, admin gin.HandlerFunc) {
	blogs := r.Group("/api/blogs")
	{
		blogs.GET("", admin, handler.ListPosts)
		blogs.GET("/published", handler.ListPublishedPosts)
		blogs.GET("/featured", handler.FeaturedPosts)
		blogs.GET("/stats", admin, handler.BlogStats)
		blogs.GET("/slug/:slug", handler.GetPostBySlug)
		blogs.GET("/:id", handler.GetPost)
		blogs.POST("", admin, handler.CreatePost)
		blogs.POST("/:id/like", handler.LikePost)
		blogs.PUT("/:id", admin, handler.UpdatePost)
		blogs.DELETE("/:id", admin, handler.DeletePost)
	}
}
