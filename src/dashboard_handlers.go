package main

import (
	"acelera/src/config"
	"acelera/src/controllers"
	"acelera/src/types"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func dashboardHandlers(g *gin.RouterGroup, studio *controllers.Studio) *gin.RouterGroup {
	g.
		GET("/dashboard", func(ctx *gin.Context) {
			dashboard, err := studio.Dashboard(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": dashboard})
		}).
		GET("/views/:kind", func(ctx *gin.Context) {
			kind, err := types.ParseViewKind(ctx.Param("kind"))
			if err != nil {
				writeError(ctx, err)
				return
			}
			var query types.ViewQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			view := types.View{Kind: kind, Query: query.Query}
			if query.Date != "" {
				d, _ := time.ParseInLocation(config.DATE_FORMAT, query.Date, studio.Location())
				view.Date = &d
			}
			data, err := studio.RenderView(ctx, view)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "view": kind})
		})
	return g
}
