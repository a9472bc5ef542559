package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	helper "github.com/safepath-labs/riskrouter/pkg/http/router/routerhelper"
)

type routingAPI struct {
	routeService RouteService
	log          *zap.Logger
}

func New(routeService RouteService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routeService: routeService,
		log:          log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/safeRoutes", api.safeRoutes)
}

// safeRoutes computes routes between two coordinates. without an alpha query
// parameter it compares the four route presets, with one it computes just
// that custom trade-off.
func (api *routingAPI) safeRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request safeRoutesRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}

	var alphas []float64
	if rawAlpha := query.Get("alpha"); rawAlpha != "" {
		request.Alpha, err = strconv.ParseFloat(rawAlpha, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("alpha must be a valid float in [0,1]"))
			return
		}
		alphas = []float64{request.Alpha}
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	routes, err := api.routeService.SafeRoutes(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, alphas)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSafeRoutesResponse(routes)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
