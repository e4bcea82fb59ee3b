//go:build integration
// +build integration

package scripts

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ZanzyTHEbar/fnrouter/fnrouter/config"
	"github.com/ZanzyTHEbar/fnrouter/fnrouter/functions"
	"github.com/ZanzyTHEbar/fnrouter/fnrouter/router"
	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"github.com/ZanzyTHEbar/fnrouter/fnrouter/router/providers"
	"github.com/rs/zerolog"
)

func must(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}

func consoleLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}

// RunSmokeRouter wires the editorial functions to a scripted model that always
// accepts the draft, then runs one chain invocation.
func RunSmokeRouter() {
	fmt.Println("Smoke test: function-call router")
	logger := consoleLogger()

	cfg, err := config.LoadConfig("")
	must(err, "load config")

	factory := router.NewFactory(cfg, logger)
	r, err := factory.CreateRouterWith(functions.Declarations(), functions.Registry())
	must(err, "create router")

	model := providers.NewFunctionCalling(functions.Accept, "{\n  \"draft\": \"turtles\"\n}")
	chain := factory.CreateChain(model, r)

	result, err := chain.Invoke(context.Background(), "Something about turtles?")
	must(err, "invoke chain")
	fmt.Println("result:", result)

	if result != "Accepted draft: turtles!" {
		log.Fatalf("unexpected result %v", result)
	}
	prompts := model.Prompts()
	if len(prompts) != 1 || len(prompts[0].Functions) != len(functions.Declarations()) {
		log.Fatalf("model did not receive the declared functions: %+v", prompts)
	}

	msg, err := router.ParseMessage([]byte(`{"content":"","function_call":{"name":"revise","arguments":"{\"notes\":\"tighten intro\"}"}}`))
	must(err, "parse message")
	result, err = r.Route(context.Background(), msg)
	must(err, "route parsed message")
	fmt.Println("result:", result)
}

// RunSmokeProvider sends one prompt to the provider named in config (llm.provider)
// and routes the reply. It needs real credentials for openai or gemini.
func RunSmokeProvider() {
	fmt.Println("Smoke test: configured provider")
	logger := consoleLogger()

	cfg, err := config.LoadConfig("")
	must(err, "load config")

	provider, err := providers.New(context.Background(), cfg.LLM)
	must(err, "create provider")
	if _, ok := provider.(*providers.Scripted); ok {
		// No live backend configured; answer like the smoke model does.
		provider = providers.NewScripted(providers.ScriptedResponse{Completion: ports.Completion{
			FunctionCall: &ports.FunctionCall{Name: functions.Accept, Arguments: `{"draft":"turtles"}`},
		}})
	}

	factory := router.NewFactory(cfg, logger)
	r, err := factory.CreateRouterWith(functions.Declarations(), functions.Registry())
	must(err, "create router")

	result, err := factory.CreateChain(provider, r).Invoke(context.Background(),
		"Here is my draft: 'Turtles are slow but steady.' Accept it if it is good, otherwise ask for a revision.")
	must(err, "invoke chain")
	fmt.Println("result:", result)
}
