package main

import (
	"acelera/src/controllers"
	"acelera/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func clientHandlers(g *gin.RouterGroup, studio *controllers.Studio) *gin.RouterGroup {
	g.
		GET("/clients", func(ctx *gin.Context) {
			clients, err := studio.Clients(ctx, ctx.Query("q"))
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": clients, "count": len(clients)})
		}).
		GET("/clients/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			client, err := studio.Client(ctx, params.ID)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": client})
		}).
		GET("/services", func(ctx *gin.Context) {
			services, err := studio.Services(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": services, "count": len(services)})
		}).
		GET("/settings", func(ctx *gin.Context) {
			settings, err := studio.Settings(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": settings})
		})
	return g
}
