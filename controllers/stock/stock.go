package stockcontrollers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GET /api/stock?ids=1,2,00000000-0000-0000-0000-000000000003
//
// Bulk stock read used to seed client-side stock state before subscribing.
// Ids are accepted in either form.
func GetStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idsParam := c.Query("ids")
		if idsParam == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids is required"})
			return
		}

		var rowIDs []string
		for _, id := range strings.Split(idsParam, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				rowIDs = append(rowIDs, catalog.ToUUID(id))
			}
		}

		var products []models.Product
		if err := db.Select("id", "stock").Where("id IN ?", rowIDs).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
			return
		}

		type stockRow struct {
			ID    string `json:"id"`
			Stock int    `json:"stock"`
		}
		rows := make([]stockRow, 0, len(products))
		for _, p := range products {
			rows = append(rows, stockRow{ID: p.ID, Stock: p.Stock})
		}

		c.JSON(http.StatusOK, gin.H{"stock": rows})
	}
}

// GET /api/stock/ws
func StockWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.register <- conn

		// Reads are discarded; the socket exists to push updates. A read
		// error is how we learn the client went away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.unregister <- conn
					return
				}
			}
		}()
	}
}
