package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/questline-studio/agency-site/pkg/api"
	"github.com/questline-studio/agency-site/pkg/config"
	"github.com/questline-studio/agency-site/pkg/lambda"
	"github.com/questline-studio/agency-site/pkg/server"
)

var handler lambda.HandlerFunc

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	server.ConfigureLogging(cfg)

	h := server.NewHandlers(cfg)
	router := api.NewBaseRouter(cfg)
	router.POST(api.LeadRoute, h.HandleLeadSubmission)
	handler = lambda.NewHandler(router)
}

func main() {
	awslambda.Start(handler)
}
