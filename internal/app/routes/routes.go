package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classroom/schoolapi/internal/app/auth"
	"github.com/classroom/schoolapi/internal/app/controllers"
	"github.com/classroom/schoolapi/internal/middleware"
)

// SetupRouter configures all application routes. The access policy decides
// per resource and action whether the JWT middleware guards the route, so
// the policy table is the single place authentication requirements live.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	classController *controllers.ClassController,
	authMiddleware *middleware.AuthMiddleware,
) {
	policy := auth.NewAccessPolicy()
	jwtAuth := authMiddleware.JWTAuth()

	// guard wraps a handler with JWT auth and, where the policy names
	// roles, a role check.
	guard := func(resource string, action auth.Action, handler gin.HandlerFunc) []gin.HandlerFunc {
		var chain []gin.HandlerFunc
		if policy.RequiresAuth(resource, action) {
			chain = append(chain, jwtAuth)
		}
		if roles := policy.RequiredRoles(resource, action); len(roles) > 0 {
			chain = append(chain, authMiddleware.RoleRequired(roles...))
		}
		return append(chain, handler)
	}

	v1 := router.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Token routes (public)
	token := v1.Group("/token")
	{
		token.POST("/", authController.ObtainToken)
		token.POST("/refresh/", authController.RefreshToken)
	}

	// User routes
	users := v1.Group("/user")
	{
		users.POST("/", guard(auth.ResourceUser, auth.ActionCreate, userController.Create)...)
		users.GET("/", guard(auth.ResourceUser, auth.ActionList, userController.List)...)
		users.POST("/change_password/", guard(auth.ResourceUser, auth.ActionChangePassword, userController.ChangePassword)...)
		users.GET("/:id", guard(auth.ResourceUser, auth.ActionRetrieve, userController.Retrieve)...)
		users.PUT("/:id", guard(auth.ResourceUser, auth.ActionUpdate, userController.Update)...)
		users.PATCH("/:id", guard(auth.ResourceUser, auth.ActionPartialUpdate, userController.PartialUpdate)...)
		users.DELETE("/:id", guard(auth.ResourceUser, auth.ActionDelete, userController.Delete)...)
	}

	// Class routes
	classes := v1.Group("/class")
	{
		classes.POST("/", guard(auth.ResourceClass, auth.ActionCreate, classController.Create)...)
		classes.GET("/", guard(auth.ResourceClass, auth.ActionList, classController.List)...)
		classes.GET("/:id", guard(auth.ResourceClass, auth.ActionRetrieve, classController.Retrieve)...)
		classes.PUT("/:id", guard(auth.ResourceClass, auth.ActionUpdate, classController.Update)...)
		classes.PATCH("/:id", guard(auth.ResourceClass, auth.ActionPartialUpdate, classController.Update)...)
		classes.DELETE("/:id", guard(auth.ResourceClass, auth.ActionDelete, classController.Delete)...)
	}
}
