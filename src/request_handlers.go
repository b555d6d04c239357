package main

import (
	"acelera/src/controllers"
	"acelera/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func requestHandlers(g *gin.RouterGroup, studio *controllers.Studio) *gin.RouterGroup {
	g.
		GET("/requests", func(ctx *gin.Context) {
			if ctx.Query("board") == "true" {
				board, err := studio.RequestBoard(ctx)
				if err != nil {
					writeError(ctx, err)
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": board})
				return
			}
			requests, err := studio.Requests(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		GET("/requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := studio.Request(ctx, params.ID)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		}).
		PUT("/requests/:id/transition", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.TransitionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			result, err := studio.TransitionRequest(ctx, params.ID, string(body.Action), body.Reply)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		})
	return g
}

// publicRequestHandlers serve the client-facing intake form.
func publicRequestHandlers(g *gin.RouterGroup, studio *controllers.Studio) *gin.RouterGroup {
	g.
		POST("/public/requests", func(ctx *gin.Context) {
			var body types.SubmitRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := studio.SubmitRequest(ctx.Request.Context(), body)
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": request.ID, "status": request.Status}})
		}).
		GET("/public/views/form", func(ctx *gin.Context) {
			form, err := studio.RenderView(ctx, types.View{Kind: types.VIEW_PUBLIC_FORM})
			if err != nil {
				writeError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": form})
		})
	return g
}
