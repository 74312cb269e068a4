package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"tanukidns/server"
	"tanukidns/stats"
	"tanukidns/zone"
)

// api handles the REST and websocket endpoints.
type api struct {
	stats     *stats.Stats
	store     *zone.Store
	dnsServer *server.Server
}

func newAPI(st *stats.Stats, store *zone.Store, dnsServer *server.Server) *api {
	return &api{
		stats:     st,
		store:     store,
		dnsServer: dnsServer,
	}
}

// handleStats returns statistics as JSON.
func (a *api) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, a.stats.GetSnapshot())
}

// handleListRecords returns all zone records.
func (a *api) handleListRecords(c *gin.Context) {
	records, err := a.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []zone.Record{}
	}
	c.JSON(http.StatusOK, records)
}

// handlePutRecord writes or replaces one A record and reloads the
// DNS server's table.
func (a *api) handlePutRecord(c *gin.Context) {
	var record zone.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if record.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if _, err := zone.ParseIPv4(record.Address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.store.Put(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := a.reloadTable(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// handleDeleteRecord removes one A record and reloads the table.
func (a *api) handleDeleteRecord(c *gin.Context) {
	name := c.Param("name")

	if err := a.store.Delete(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := a.reloadTable(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *api) reloadTable() error {
	table, err := a.store.Table()
	if err != nil {
		return err
	}
	a.dnsServer.SetResolver(table)
	return nil
}

var upgrader = websocket.Upgrader{
	// The dashboard may be served from another origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleLive streams query events over a websocket until the client
// goes away.
func (a *api) handleLive(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		glog.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := a.stats.Subscribe()
	defer cancel()

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}
}
