package main

import (
	"context"
	"flag"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/safepath-labs/riskrouter/pkg"
	"github.com/safepath-labs/riskrouter/pkg/costfunction"
	"github.com/safepath-labs/riskrouter/pkg/datastructure"
	"github.com/safepath-labs/riskrouter/pkg/engine/routing"
	"github.com/safepath-labs/riskrouter/pkg/http"
	"github.com/safepath-labs/riskrouter/pkg/http/usecases"
	"github.com/safepath-labs/riskrouter/pkg/loader"
	"github.com/safepath-labs/riskrouter/pkg/logger"
	"github.com/safepath-labs/riskrouter/pkg/spatialindex"
	"github.com/safepath-labs/riskrouter/pkg/util"
)

var (
	roadNetworkFile = flag.String("road_network", "./data/road_network.geojson", "road network geojson file")
	crimeDataFile   = flag.String("crime_data", "./data/crime.csv", "crime incident csv, leave empty when the road network already carries risk_score properties")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}
	viper.SetDefault("MAX_SETTLED_VERTICES", pkg.DEFAULT_MAX_SETTLED_VERTICES)

	features, err := loader.LoadRoadNetwork(*roadNetworkFile, nil, logger)
	if err != nil {
		panic(err)
	}

	if *crimeDataFile != "" {
		now := time.Now()
		records, err := loader.LoadCrimeRecords(*crimeDataFile, pkg.CRIME_TIME_WINDOW_DAYS, now, logger)
		if err != nil {
			panic(err)
		}
		annotator := loader.NewRiskAnnotator(records, pkg.CRIME_SEARCH_RADIUS_METER, now, logger)
		features = annotator.Annotate(features)
	}

	builder := datastructure.NewGraphBuilder()
	builder.AddFeatures(features)
	graph, err := builder.Build()
	if err != nil {
		panic(err)
	}
	logger.Info("risk graph built",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))

	costFunction, err := costfunction.NewRiskBlendFunction()
	if err != nil {
		panic(err)
	}
	routingEngine := routing.NewRoutingEngine(graph, costFunction,
		viper.GetInt("MAX_SETTLED_VERTICES"), logger)

	rtree, err := spatialindex.NewRtree()
	if err != nil {
		panic(err)
	}
	rtree.Build(graph, logger)

	api := http.NewServer(logger)
	routeService := usecases.NewRouteService(logger, routingEngine, rtree)

	ctx, cleanup := NewContext()
	if _, err := api.Use(ctx, logger, routeService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("risk router server stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, func() { cancel() }
}
