package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guildworks/guildhall/internal/cache"
	"github.com/guildworks/guildhall/internal/db"
	"github.com/guildworks/guildhall/internal/perms"
	"github.com/guildworks/guildhall/internal/trending"
	"github.com/guildworks/guildhall/pkg/config"
	"github.com/guildworks/guildhall/pkg/logging"
)

// Router sets up API routes
type Router struct {
	handler *JSONRPCHandler
	cfg     *config.Config
	db      *db.DB
	cache   *cache.Cache
	scorer  *trending.Scorer
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(cfg *config.Config, database *db.DB, redisCache *cache.Cache, scorer *trending.Scorer) *Router {
	handler := NewJSONRPCHandler()
	router := &Router{
		handler: handler,
		cfg:     cfg,
		db:      database,
		cache:   redisCache,
		scorer:  scorer,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}

	// Register all API methods
	router.registerMethods()

	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// JSON-RPC endpoint
	engine.POST("/", r.handler.Handle)
}

// registerMethods registers all API methods
func (r *Router) registerMethods() {
	repo := db.NewRepository(r.db.DB)

	engagement := db.NewEngagementRepository(repo)
	membership := db.NewMembershipRepository(repo)
	permissions := db.NewPermissionRepository(repo)

	// Score cache falls back to process memory when Redis is off
	var store trending.Store
	if r.cache != nil {
		store = r.cache
	} else {
		store = cache.NewMemory()
	}

	forumTrending := NewTrendingAPI(engagement, r.scorer, store, r.cache)
	forumPerms := NewPermissionsAPI(membership, permissions, perms.NewResolver(r.cfg.Forum.GuestGroupID))

	r.handler.RegisterMethod("forum.get_trending_topics", forumTrending.GetTrendingTopics)
	r.handler.RegisterMethod("forum.get_topic_score", forumTrending.GetTopicScore)
	r.handler.RegisterMethod("forum.get_permissions", forumPerms.GetPermissions)
	r.handler.RegisterMethod("forum.list_readable_forums", forumPerms.ListReadableForums)

	r.handler.RegisterMethod("forum.list_forums", r.listForums)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "guildhall-api",
	})
}

// listForums returns visible forums in display order
func (r *Router) listForums(c *gin.Context, params json.RawMessage) (interface{}, error) {
	forumRepo := db.NewForumRepository(db.NewRepository(r.db.DB))

	forums, err := forumRepo.ListVisible(c.Request.Context())
	if err != nil {
		return nil, err
	}

	result := make([]gin.H, 0, len(forums))
	for _, f := range forums {
		result = append(result, gin.H{
			"id":          f.ID,
			"name":        f.Name,
			"slug":        f.Slug,
			"description": f.Description,
		})
	}
	return result, nil
}
