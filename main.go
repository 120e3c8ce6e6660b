package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"linear-mcp-server/internal/application"
	"linear-mcp-server/internal/domain"
	"linear-mcp-server/internal/infrastructure"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	log.Printf("Loading configuration from: %s", *configPath)
	config, err := domain.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		log.Fatal("Set LINEAR_API_KEY to a Linear personal API key (and optionally LINEAR_TEAM_NAME)")
	}

	log.Println("Configuration loaded successfully")

	// Create authenticated HTTP client for the Linear GraphQL API
	credentials := &domain.Credentials{APIKey: config.Linear.APIKey}
	httpClient, err := domain.NewAuthenticatedClient(credentials)
	if err != nil {
		log.Fatalf("Failed to create authenticated client: %v", err)
	}

	// Create response mapper
	mapper := domain.NewResponseMapper()

	// Create the Linear client and tool handler
	log.Printf("Initializing Linear client for %s", config.Linear.Endpoint)
	linearClient := infrastructure.NewLinearClient(config.Linear.Endpoint, httpClient, config.Linear.RequestTimeout)
	linearHandler := application.NewLinearHandler(linearClient, mapper, config.Linear.PageSize)

	// Create request router
	router := application.NewRequestRouter(linearHandler)
	log.Printf("Request router initialized with %d tool(s)", len(router.ListAllTools()))

	// Create transport based on configuration
	var transport domain.Transport
	switch config.Transport.Type {
	case "stdio":
		log.Println("Initializing stdio transport")
		transport = domain.NewStdioTransport()
	case "http":
		log.Printf("Initializing HTTP transport on %s:%d", config.Transport.HTTP.Host, config.Transport.HTTP.Port)
		transport = domain.NewHTTPTransport(config.Transport.HTTP.Host, config.Transport.HTTP.Port)
	default:
		log.Fatalf("Invalid transport type: %s", config.Transport.Type)
	}

	// Create server with all dependencies
	server := application.NewServer(transport, router, mapper, config)
	log.Println("MCP server created")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting MCP server...")
		if err := server.Start(ctx); err != nil {
			errChan <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Log successful startup
	if config.Transport.Type == "stdio" {
		log.Println("MCP server started successfully (stdio transport)")
	} else {
		log.Printf("MCP server started successfully (HTTP transport on %s:%d)",
			config.Transport.HTTP.Host, config.Transport.HTTP.Port)
	}

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()
	case err := <-errChan:
		log.Printf("Server error: %v", err)
		cancel()
		if err := server.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
		os.Exit(1)
	}

	// Close the server
	log.Println("Closing server...")
	if err := server.Close(); err != nil {
		log.Printf("Error during server shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server shutdown complete")
}
