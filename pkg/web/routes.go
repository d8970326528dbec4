// Package web provides API routes for the web server.
package web

import (
	"errors"
	"net/http"

	"github.com/PancyStudios/PancyCasesGo/pkg/database"
	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/guilds/:guildId/users/:userId/summary", summaryHandler)
		api.GET("/live", liveHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyCases Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// summaryHandler returns the moderation summary for a user in a guild
func summaryHandler(c *gin.Context) {
	svc := moderation.Get()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Service Unavailable",
			"message": "The moderation service is not initialized.",
		})
		return
	}

	guildID := c.Param("guildId")
	userID := c.Param("userId")

	summary, err := svc.BuildSummary(c.Request.Context(), guildID, userID)
	if err != nil {
		if errors.Is(err, moderation.ErrUserNotResolved) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "User Not Found",
				"message": "Could not resolve that user in the guild.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Error",
			"message": err.Error(),
		})
		return
	}

	resp := gin.H{
		"userId":            summary.UserID,
		"reports":           summary.Reports,
		"warnings":          summary.Warnings,
		"banned":            summary.Banned,
		"lastWarningReport": summary.LastWarningReport,
	}
	if summary.LastWarning != nil {
		resp["lastWarning"] = summary.LastWarning.Date
	}
	if summary.LastBan != nil {
		resp["lastBan"] = gin.H{
			"date":   summary.LastBan.Date,
			"reason": summary.LastBan.Reason,
			"active": summary.LastBan.Active,
		}
	}

	c.JSON(http.StatusOK, resp)
}
