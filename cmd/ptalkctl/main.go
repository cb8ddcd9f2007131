package main

import (
	"context"
	"fmt"
	"os"

	"ptalk-server/api"
	"ptalk-server/api/ptalk"
	"ptalk-server/cli"
	"ptalk-server/config"
)

var version = "dev"

func main() {
	cfg := config.LoadClient()

	var client ptalk.PTalkAPI
	if cfg.Offline {
		mock, err := ptalk.NewPTalkApiClientMock(cfg.ResourcesDirPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "offline mode: %v\n", err)
			os.Exit(1)
		}
		client = mock
	} else {
		client = ptalk.NewPTalkApiClient(api.NewHTTPClient(cfg.APIBaseURL))
	}
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}

	deps := cli.Dependencies{
		API:     client,
		Stdin:   os.Stdin,
		Version: version,
	}
	os.Exit(cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr))
}
