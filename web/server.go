package web

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang/glog"

	"tanukidns/server"
	"tanukidns/stats"
	"tanukidns/zone"
)

// Server is the dashboard and management API.
type Server struct {
	port   int
	engine *gin.Engine
}

// New creates the web server. Record mutations are written to the
// store and then swapped into the DNS server as a fresh table.
func New(port int, st *stats.Stats, store *zone.Store, dnsServer *server.Server) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	api := newAPI(st, store, dnsServer)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "tanukidns",
		})
	})

	group := router.Group("/api")
	{
		group.GET("/stats", api.handleStats)
		group.GET("/records", api.handleListRecords)
		group.PUT("/records", api.handlePutRecord)
		group.DELETE("/records/:name", api.handleDeleteRecord)
		group.GET("/live", api.handleLive)
	}

	return &Server{port: port, engine: router}
}

// Start serves the API. Blocks until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Web dashboard listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.engine)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
