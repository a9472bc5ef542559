package controllers

import (
	"github.com/safepath-labs/riskrouter/pkg/http/usecases"
)

type safeRoutesRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Alpha          float64 `json:"alpha" validate:"min=0,max=1"`
}

type alphaRouteResponse struct {
	Alpha       float64 `json:"alpha"`
	Description string  `json:"description"`
	Distance    float64 `json:"distance"`
	AverageRisk float64 `json:"average_risk"`
	NodeCount   int     `json:"node_count"`
	Path        string  `json:"path"`
	Found       bool    `json:"found"`
	Error       string  `json:"error,omitempty"`
}

type safeRoutesResponse struct {
	Routes []alphaRouteResponse `json:"routes"`
}

func NewSafeRoutesResponse(routes []usecases.AlphaRoute) safeRoutesResponse {
	out := make([]alphaRouteResponse, len(routes))
	for i := range routes {
		route := &routes[i]
		out[i] = alphaRouteResponse{
			Alpha:       route.GetAlpha(),
			Description: route.GetDescription(),
			Distance:    route.GetDistance(),
			AverageRisk: route.GetAverageRisk(),
			NodeCount:   route.GetNodeCount(),
			Path:        route.GetPolyline(),
			Found:       route.IsFound(),
		}
		if err := route.GetErr(); err != nil {
			out[i].Error = err.Error()
		}
	}
	return safeRoutesResponse{Routes: out}
}
