package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"comicstudio/internal/httpapi"
	"comicstudio/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var httpAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio, or the JSON API with --http",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(httpAddr)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve the JSON API on this address instead of MCP")
	return cmd
}

func runServe(httpAddr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if httpAddr == "" {
		server := mcp.NewServer(a.studio, a.templates, version)
		return server.Run(ctx, &sdk.StdioTransport{})
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              httpAddr,
		Handler:           httpapi.NewRouter(a.studio, a.codec(), a.log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http api listening", zap.String("addr", httpAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
