package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"research-agent/internal/di"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/env"
	"research-agent/internal/infrastructure/userinteraction"
)

func main() {
	envService := env.NewEnvService()

	if envService.Get("GROQ_API_KEY") == "" {
		log.Fatal((&entity.ConfigurationError{Key: "GROQ_API_KEY"}).Error())
	}

	cfg := di.Config{
		GroqAPIKey:     envService.Get("GROQ_API_KEY"),
		ReasoningModel: envService.Get("GROQ_REASONING_MODEL"),
		FastModel:      envService.Get("GROQ_FAST_MODEL"),
		TracingEnabled: envService.GetBool("LANGCHAIN_TRACING_V2", true),
		TracingAPIKey:  envService.Get("LANGCHAIN_API_KEY"),
		TracingProject: envService.GetDefault("LANGCHAIN_PROJECT", "ai-research-assistant"),
		ResultsDir:     envService.GetDefault("RESULTS_DIR", "."),
		LLMTimeout:     envService.GetDuration("GROQ_TIMEOUT", 60*time.Second),
	}

	console := userinteraction.NewConsole()
	cfg.Progress = console
	ctx := context.Background()

	for {
		query, ok, err := console.SelectQuery(ctx)
		if err != nil {
			log.Fatalf("Failed to read query: %v", err)
		}
		if !ok {
			fmt.Println("Goodbye!")
			return
		}

		if err := runQuery(ctx, console, query, cfg); err != nil {
			fmt.Printf("\nWorkflow failed: %v\n", err)
			os.Exit(1)
		}

		again, err := console.AskRunAgain(ctx)
		if err != nil || !again {
			fmt.Println("Thank you for using AI Research & Decision Assistant!")
			return
		}
	}
}

func runQuery(ctx context.Context, console *userinteraction.Console, query string, cfg di.Config) error {
	container, err := di.NewContainer(query, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	container.Logger.Info("Query accepted", "query", query)
	fmt.Printf("\nProcessing your query: %s\n", query)
	fmt.Println("This may take 15-30 seconds...")

	result, err := container.Workflow.Execute(ctx, query)
	if err != nil {
		container.Logger.Error("Workflow failed", "error", err)
		return err
	}

	console.ShowReport(ctx, result)

	path, err := container.Store.Save(ctx, result)
	if err != nil {
		container.Logger.Error("Failed to save results", "error", err)
		return err
	}

	fmt.Printf("Results saved to %s and results.json\n", path)
	return nil
}
