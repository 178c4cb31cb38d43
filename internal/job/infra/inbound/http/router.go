package http

import "github.com/gin-gonic/gin"

// RegisterJobRoutes mounts the job endpoints. The public board only serves
// active postings; the unrestricted list, mutations and stats require the
// admin middleware. Applying stays public.
func RegisterJobRoutes(r *gin.Engine, handler *JobHandler, admin gin.HandlerFunc) {
	jobs := r.Group("/api/jobs")
	{
		jobs.GET("", admin, handler.ListJobs)
		jobs.GET("/active", handler.ListActiveJobs)
		jobs.GET("/featured", handler.FeaturedJobs)
		jobs.GET("/stats", admin, handler.JobStats)
		jobs.GET("/slug/:slug", handler.GetJobBySlug)
		jobs.GET("/:id", handler.GetJob)
		jobs.POST("", admin, handler.CreateJob)
		jobs.POST("/:id/apply", handler.ApplyToJob)
		jobs.PUT("/:id", admin, handler.UpdateJob)
		jobs.DELETE("/:id", admin, handler.DeleteJob)
	}
}
