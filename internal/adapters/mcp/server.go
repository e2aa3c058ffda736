// Package mcp exposes the workshop service as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/bigpicture"
	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/workshop"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the workshop service and exposes it as an MCP Server.
type Server struct {
	svc       *workshop.Service
	log       *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc *workshop.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		svc:       svc,
		log:       log,
		mcpServer: server.NewMCPServer("bigpicture-mcp", bigpicture.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Info("shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// toolError renders a domain or validation error as a structured JSON tool
// error. Tool errors never terminate the server.
func (s *Server) toolError(err error) *mcp.CallToolResult {
	payload := map[string]any{"error": err.Error()}

	switch {
	case errors.Is(err, domain.ErrWorkshopNotFound):
		payload["suggestion"] = "Use eventstorming_list_workshops to see available workshops"
	case errors.Is(err, domain.ErrElementNotFound):
		payload["suggestion"] = "Use eventstorming_search_elements to find element IDs"
	case errors.Is(err, domain.ErrContextNotFound):
		payload["suggestion"] = "Use eventstorming_get_context_overview to see available contexts"
	}

	var verr *workshop.ValidationError
	if errors.As(err, &verr) {
		payload["field"] = verr.Field
	}

	data, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultError(string(data))
}
