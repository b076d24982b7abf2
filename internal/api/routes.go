package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/Hemanth-2OOT/Care-cloud/internal/api/middleware"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/analyze").
			To(handler.Analyze).
			Doc("Analyze a message for risk to a child").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyze"}).
			Reads(models.AnalysisRequest{}).
			Writes(AnalysisResponse{}).
			Returns(200, "OK", AnalysisResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/analyses").
			To(handler.RecentAnalyses).
			Doc("List recent analyses, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"history"}).
			Param(ws.QueryParameter("limit", "Maximum rows to return (default: 50, max: 500)").DataType("integer").Required(false)).
			Writes([]AnalysisResponse{}).
			Returns(200, "OK", []AnalysisResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/analyses/requester/{requester_name}").
			To(handler.AnalysesByRequester).
			Doc("List analyses for one requester, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"history"}).
			Param(ws.PathParameter("requester_name", "Requester display name").DataType("string")).
			Param(ws.QueryParameter("limit", "Maximum rows to return (default: 50, max: 500)").DataType("integer").Required(false)).
			Writes([]AnalysisResponse{}).
			Returns(200, "OK", []AnalysisResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
