package main

import (
	"acelera/src/controllers"
	"acelera/src/types"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func transactionHandlers(g *gin.RouterGroup, studio *controllers.Studio) *gin.RouterGroup {
	g.
		GET("/transactions", func(ctx *gin.Context) {
			txs, err := studio.Transactions(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txs, "count": len(txs)})
		}).
		POST("/transactions", func(ctx *gin.Context) {
			var body types.CreateTransactionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			tx, err := studio.CreateTransaction(ctx, body)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": tx})
		}).
		GET("/finance", func(ctx *gin.Context) {
			summary, err := studio.Finance(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": summary})
		}).
		GET("/finance/export", func(ctx *gin.Context) {
			var query types.ExportQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			export, err := studio.ExportLedger(ctx, query.Format)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Name))
			ctx.Data(http.StatusOK, export.ContentType, export.Body)
		})
	return g
}
