package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldmap-io/fieldmap/internal/config"
	"github.com/fieldmap-io/fieldmap/internal/middleware"
	"github.com/fieldmap-io/fieldmap/internal/modules/handler"
	"github.com/fieldmap-io/fieldmap/internal/modules/serializer"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	AuthService     service.AuthService
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	ProjectHandler  *handler.ProjectHandler
	LayerHandler    *handler.LayerHandler
	AssetHandler    *handler.AssetHandler
	PhotoHandler    *handler.PhotoHandler
	GeometryHandler *handler.GeometryHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery())

	// Add OpenTelemetry middleware if enabled (using configuration system)
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.AuthHandler.Register)
			auth.POST("/login", d.AuthHandler.Login)
			auth.POST("/logout", d.AuthHandler.Logout)
			auth.GET("/me", middleware.SessionAuth(d.AuthService), d.AuthHandler.Me)
		}

		authed := v1.Group("")
		authed.Use(middleware.SessionAuth(d.AuthService))

		user := authed.Group("/users")
		{
			user.Use(middleware.RequireAdmin())
			user.GET("", d.UserHandler.ListUsers)
			user.POST("", d.UserHandler.CreateUser)
			user.GET("/:id", d.UserHandler.GetUser)
			user.PATCH("/:id", d.UserHandler.UpdateUser)
			user.DELETE("/:id", d.UserHandler.DeleteUser)
		}

		project := authed.Group("/projects")
		{
			project.GET("", d.ProjectHandler.ListProjects)
			project.POST("", d.ProjectHandler.CreateProject)
			project.GET("/name_taken", d.ProjectHandler.NameTaken)
			project.GET("/:project_id", d.ProjectHandler.GetProject)
			project.PATCH("/:project_id", d.ProjectHandler.UpdateProject)
			project.DELETE("/:project_id", d.ProjectHandler.DeleteProject)
			project.POST("/:project_id/restore", d.ProjectHandler.RestoreProject)

			project.GET("/:project_id/layers", d.LayerHandler.ListLayers)
			project.GET("/:project_id/assets", d.AssetHandler.ListAssets)
		}

		layer := authed.Group("/layers")
		{
			layer.POST("", d.LayerHandler.CreateLayer)
			layer.GET("/:layer_id", d.LayerHandler.GetLayer)
			layer.PATCH("/:layer_id", d.LayerHandler.UpdateLayer)
			layer.DELETE("/:layer_id", d.LayerHandler.DeleteLayer)
			layer.GET("/:layer_id/assets", d.AssetHandler.ListLayerAssets)
		}

		asset := authed.Group("/assets")
		{
			asset.POST("", d.AssetHandler.CreateAsset)
			asset.GET("/:asset_id", d.AssetHandler.GetAsset)
			asset.PATCH("/:asset_id", d.AssetHandler.UpdateAsset)
			asset.DELETE("/:asset_id", d.AssetHandler.DeleteAsset)

			asset.POST("/:asset_id/photos", d.PhotoHandler.AddPhoto)
			asset.GET("/:asset_id/photos", d.PhotoHandler.ListPhotos)
		}

		authed.DELETE("/photos/:photo_id", d.PhotoHandler.DeletePhoto)

		geometry := authed.Group("/geometry")
		{
			geometry.POST("/analyze", d.GeometryHandler.Analyze)
			geometry.POST("/simplify", d.GeometryHandler.Simplify)
			geometry.POST("/buffer", d.GeometryHandler.Buffer)
			geometry.POST("/convert", d.GeometryHandler.Convert)
		}
	}
	return r
}

// registerValidations adds the custom "trimmed" rule used on name fields:
// non-empty after stripping whitespace, no leading/trailing whitespace.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.TrimSpace(s) && strings.TrimSpace(s) != ""
	})
}
